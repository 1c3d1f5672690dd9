package wim

import "github.com/mesh-intelligence/dirschema/pkg/schema"

var groupDecl = schema.Decl{
	Name:       TypeGroup,
	Super:      TypeParty,
	Extensible: true,
	Properties: []schema.PropertyDecl{
		schema.Prop("cn", str, mandatory),
		schema.Prop("members", TypeEntity, multi),
		schema.Prop("displayName", str, multi),
		schema.Prop("description", str, multi),
		schema.Prop("businessCategory", str, multi),
		schema.Prop("seeAlso", str, multi),
	},
}

var containerDecl = schema.Decl{
	Name:  TypeContainer,
	Super: TypeEntity,
	Properties: []schema.PropertyDecl{
		schema.Prop("cn", str, mandatory),
	},
}

var orgContainerDecl = schema.Decl{
	Name:       TypeOrgContainer,
	Super:      TypeParty,
	Extensible: true,
	Properties: []schema.PropertyDecl{
		schema.Prop("o", str),
		schema.Prop("ou", str),
		schema.Prop("dc", str),
		schema.Prop("cn", str),
		schema.Prop("telephoneNumber", str, multi),
		schema.Prop("facsimileTelephoneNumber", str, multi),
		schema.Prop("postalAddress", str, multi),
		schema.Prop("l", str, multi),
		schema.Prop("localityName", str, multi),
		schema.Prop("st", str, multi),
		schema.Prop("stateOrProvinceName", str, multi),
		schema.Prop("street", str, multi),
		schema.Prop("postalCode", str, multi),
		schema.Prop("businessAddress", TypeAddress),
		schema.Prop("description", str, multi),
		schema.Prop("businessCategory", str, multi),
		schema.Prop("seeAlso", str, multi),
	},
}

var geographicLocationDecl = schema.Decl{
	Name:  TypeGeographicLocation,
	Super: TypeEntity,
}

var countryDecl = schema.Decl{
	Name:  TypeCountry,
	Super: TypeGeographicLocation,
	Properties: []schema.PropertyDecl{
		schema.Prop("c", str),
		schema.Prop("countryName", str),
		schema.Prop("description", str, multi),
	},
}

var localityDecl = schema.Decl{
	Name:  TypeLocality,
	Super: TypeGeographicLocation,
	Properties: []schema.PropertyDecl{
		schema.Prop("l", str),
		schema.Prop("localityName", str),
		schema.Prop("description", str, multi),
	},
}
