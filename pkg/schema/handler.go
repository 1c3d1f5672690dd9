package schema

import "slices"

// handler is one level of a delegation chain. It answers for the
// properties its type declares and for the extensions registered on its
// type; everything else is the parent's business.
type handler struct {
	desc   *TypeDescriptor
	parent *handler
}

// fieldKey identifies storage for one property at one level of the chain.
// Two levels declaring the same name keep separate values, as each level
// only knows its own fields.
type fieldKey struct {
	owner *TypeDescriptor
	name  string
}

// slot is what a handler knows about one property name.
type slot struct {
	key      fieldKey
	dataType string
	multi    bool
	ext      bool
	def      Value
}

// resolve reports whether this level owns name, checking declared
// properties before extensions.
func (h *handler) resolve(r *Registry, name string) (slot, bool) {
	key := fieldKey{owner: h.desc, name: name}
	if dt, ok := h.desc.dataType[name]; ok {
		return slot{key: key, dataType: dt, multi: h.desc.multi[name]}, true
	}
	if h.desc.extensible {
		if e, ok := r.extension(h.desc.name, name); ok {
			return slot{key: key, dataType: e.DataType, multi: e.MultiValued, ext: true, def: e.Default}, true
		}
	}
	return slot{}, false
}

// stored returns the explicit value of an extension slot. A value left
// behind by an earlier registration of the same name counts only while it
// still matches the current data type and cardinality.
func (s slot) stored(rec *Record) (Value, bool) {
	v, ok := rec.ext[s.key]
	if !ok {
		return Value{}, false
	}
	if s.multi != (v.kind == KindList) || rec.reg.check(s.key.name, s.dataType, s.multi, v) != nil {
		return Value{}, false
	}
	return v, true
}

func (s slot) get(rec *Record) Value {
	if s.ext {
		if v, ok := s.stored(rec); ok {
			return v
		}
		return s.def
	}
	if s.multi {
		list := rec.multi[s.key]
		out := make([]Value, len(list))
		copy(out, list)
		return Value{kind: KindList, list: out}
	}
	return rec.single[s.key]
}

func (s slot) isSet(rec *Record) bool {
	if s.ext {
		_, ok := s.stored(rec)
		return ok || !s.def.IsNull()
	}
	if s.multi {
		return len(rec.multi[s.key]) > 0
	}
	_, ok := rec.single[s.key]
	return ok
}

// isDefaulted reports whether an extension reads its registered default
// because no explicit value is stored.
func (s slot) isDefaulted(rec *Record) bool {
	if !s.ext || s.def.IsNull() {
		return false
	}
	_, ok := s.stored(rec)
	return !ok
}

// set stores v. Multi-valued declared properties append; multi-valued
// extensions take a list as a bulk replacement and append anything else.
// Null clears a single value or an explicit extension value and leaves a
// multi-valued declared property alone.
func (s slot) set(rec *Record, v Value) {
	switch {
	case s.ext && v.IsNull():
		delete(rec.ext, s.key)
	case s.ext && s.multi && v.kind == KindList:
		rec.ext[s.key] = v
	case s.ext && s.multi:
		prev, _ := s.stored(rec)
		rec.ext[s.key] = Value{kind: KindList, list: append(slices.Clone(prev.list), v)}
	case s.ext:
		rec.ext[s.key] = v
	case s.multi:
		if elems := v.elements(); len(elems) > 0 {
			rec.multi[s.key] = append(rec.multi[s.key], elems...)
		}
	case v.IsNull():
		delete(rec.single, s.key)
	default:
		rec.single[s.key] = v
	}
}

// unset clears the stored value. A multi-valued declared property is left
// as an empty, non-nil sequence. An extension falls back to its default.
func (s slot) unset(rec *Record) {
	switch {
	case s.ext:
		delete(rec.ext, s.key)
	case s.multi:
		rec.multi[s.key] = []Value{}
	default:
		delete(rec.single, s.key)
	}
}

// add appends elems to a multi-valued slot.
func (s slot) add(rec *Record, elems []Value) {
	if s.ext {
		prev, _ := s.stored(rec)
		rec.ext[s.key] = Value{kind: KindList, list: append(slices.Clone(prev.list), elems...)}
		return
	}
	if rec.multi[s.key] == nil {
		rec.multi[s.key] = []Value{}
	}
	rec.multi[s.key] = append(rec.multi[s.key], elems...)
}

// remove drops the first element equal to v and reports whether one was
// found. Registered defaults are never edited.
func (s slot) remove(rec *Record, v Value) bool {
	if s.ext {
		prev, ok := s.stored(rec)
		if !ok {
			return false
		}
		i := slices.IndexFunc(prev.list, v.Equal)
		if i < 0 {
			return false
		}
		rec.ext[s.key] = Value{kind: KindList, list: slices.Delete(slices.Clone(prev.list), i, i+1)}
		return true
	}
	list := rec.multi[s.key]
	i := slices.IndexFunc(list, v.Equal)
	if i < 0 {
		return false
	}
	rec.multi[s.key] = slices.Delete(list, i, i+1)
	return true
}

// replace swaps the whole sequence for elems.
func (s slot) replace(rec *Record, elems []Value) {
	out := make([]Value, len(elems))
	copy(out, elems)
	if s.ext {
		rec.ext[s.key] = Value{kind: KindList, list: out}
		return
	}
	rec.multi[s.key] = out
}
