package wim

import (
	"github.com/mesh-intelligence/dirschema/pkg/schema"
	"github.com/mesh-intelligence/dirschema/pkg/types"
)

const (
	str     = types.DataTypeString
	boolean = types.DataTypeBoolean
	binary  = types.DataTypeBinary
	date    = types.DataTypeDateTime
)

const (
	multi     = schema.Multi
	mandatory = schema.Mandatory
	transient = schema.Transient
)

var identifierDecl = schema.Decl{
	Name: TypeIdentifier,
	Properties: []schema.PropertyDecl{
		schema.Prop("uniqueId", str),
		schema.Prop("uniqueName", str),
		schema.Prop("externalId", str),
		schema.Prop("externalName", str),
		schema.Prop("repositoryId", str),
	},
}

var viewIdentifierDecl = schema.Decl{
	Name: TypeViewIdentifier,
	Properties: []schema.PropertyDecl{
		schema.Prop("viewName", str),
		schema.Prop("viewEntryUniqueId", str),
		schema.Prop("viewEntryName", str),
	},
}

var addressDecl = schema.Decl{
	Name: TypeAddress,
	Properties: []schema.PropertyDecl{
		schema.Prop("nickName", str),
		schema.Prop("street", str, multi),
		schema.Prop("city", str),
		schema.Prop("stateOrProvinceName", str),
		schema.Prop("postalCode", str),
		schema.Prop("countryName", str),
	},
}

// Entity is the root of the hierarchy. The links to other entities are
// derived by the directory and never stored.
var entityDecl = schema.Decl{
	Name:        TypeEntity,
	TracksUnset: true,
	Properties: []schema.PropertyDecl{
		schema.Prop("identifier", TypeIdentifier),
		schema.Prop("viewIdentifiers", TypeViewIdentifier, multi),
		schema.Prop("parent", TypeEntity, transient),
		schema.Prop("children", TypeEntity, multi, transient),
		schema.Prop("groups", TypeGroup, multi, transient),
		schema.Prop("createTimestamp", date),
		schema.Prop("modifyTimestamp", date),
		schema.Prop("changeType", str, transient),
	},
}

var rolePlayerDecl = schema.Decl{
	Name:  TypeRolePlayer,
	Super: TypeEntity,
	Properties: []schema.PropertyDecl{
		schema.Prop("partyRoles", TypePartyRole, multi, transient),
	},
}

var partyDecl = schema.Decl{
	Name:  TypeParty,
	Super: TypeRolePlayer,
}

var partyRoleDecl = schema.Decl{
	Name:  TypePartyRole,
	Super: TypeRolePlayer,
	Properties: []schema.PropertyDecl{
		schema.Prop("primaryRolePlayer", TypeRolePlayer, mandatory),
		schema.Prop("relatedRolePlayer", TypeRolePlayer, multi),
	},
}
