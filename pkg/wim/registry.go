package wim

import "github.com/mesh-intelligence/dirschema/pkg/schema"

// Decls returns the declarations of every directory type. The slice is
// fresh on each call.
func Decls() []schema.Decl {
	return []schema.Decl{
		identifierDecl,
		viewIdentifierDecl,
		addressDecl,
		entityDecl,
		rolePlayerDecl,
		partyDecl,
		partyRoleDecl,
		personDecl,
		loginAccountDecl,
		personAccountDecl,
		groupDecl,
		containerDecl,
		orgContainerDecl,
		geographicLocationDecl,
		countryDecl,
		localityDecl,
	}
}

// NewRegistry builds a registry holding the directory types.
func NewRegistry(opts ...schema.Option) (*schema.Registry, error) {
	return schema.NewRegistry(Decls(), opts...)
}
