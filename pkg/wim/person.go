package wim

import "github.com/mesh-intelligence/dirschema/pkg/schema"

var personDecl = schema.Decl{
	Name:       TypePerson,
	Super:      TypeParty,
	Extensible: true,
	Properties: []schema.PropertyDecl{
		schema.Prop("uid", str),
		schema.Prop("cn", str, mandatory),
		schema.Prop("sn", str, mandatory),
		schema.Prop("preferredLanguage", str),
		schema.Prop("displayName", str, multi),
		schema.Prop("initials", str, multi),
		schema.Prop("mail", str),
		schema.Prop("ibmPrimaryEmail", str),
		schema.Prop("jpegPhoto", binary, multi),
		schema.Prop("labeledURI", str),
		schema.Prop("telephoneNumber", str, multi),
		schema.Prop("mobile", str, multi),
		schema.Prop("postalAddress", str, multi),
		schema.Prop("street", str, multi),
		schema.Prop("city", str, multi),
		schema.Prop("postalCode", str, multi),
		schema.Prop("employeeType", str),
		schema.Prop("employeeNumber", str),
		schema.Prop("manager", TypeIdentifier, multi),
		schema.Prop("secretary", TypeIdentifier, multi),
		schema.Prop("departmentNumber", str, multi),
		schema.Prop("title", str, multi),
		schema.Prop("givenName", str, multi),
		schema.Prop("description", str, multi),
		schema.Prop("homeAddress", TypeAddress),
		schema.Prop("businessAddress", TypeAddress),
		schema.Prop("kerberosId", str),
		schema.Prop("active", boolean),
	},
}

var loginAccountDecl = schema.Decl{
	Name:  TypeLoginAccount,
	Super: TypeParty,
	Properties: []schema.PropertyDecl{
		schema.Prop("principalName", str, transient),
		schema.Prop("password", binary),
		schema.Prop("realm", str),
		schema.Prop("certificate", binary, multi),
	},
}

var personAccountDecl = schema.Decl{
	Name:       TypePersonAccount,
	Super:      TypeLoginAccount,
	Extensible: true,
	Properties: []schema.PropertyDecl{
		schema.Prop("uid", str),
		schema.Prop("cn", str, mandatory),
		schema.Prop("sn", str, mandatory),
		schema.Prop("preferredLanguage", str),
		schema.Prop("displayName", str, multi),
		schema.Prop("initials", str, multi),
		schema.Prop("mail", str),
		schema.Prop("ibmPrimaryEmail", str),
		schema.Prop("jpegPhoto", binary, multi),
		schema.Prop("labeledURI", str),
		schema.Prop("carLicense", str, multi),
		schema.Prop("telephoneNumber", str, multi),
		schema.Prop("facsimileTelephoneNumber", str, multi),
		schema.Prop("pager", str, multi),
		schema.Prop("mobile", str, multi),
		schema.Prop("homePostalAddress", str, multi),
		schema.Prop("postalAddress", str, multi),
		schema.Prop("roomNumber", str, multi),
		schema.Prop("l", str, multi),
		schema.Prop("localityName", str, multi),
		schema.Prop("st", str, multi),
		schema.Prop("stateOrProvinceName", str, multi),
		schema.Prop("street", str, multi),
		schema.Prop("postalCode", str, multi),
		schema.Prop("city", str, multi),
		schema.Prop("employeeType", str),
		schema.Prop("employeeNumber", str),
		schema.Prop("manager", TypeIdentifier, multi),
		schema.Prop("secretary", TypeIdentifier, multi),
		schema.Prop("departmentNumber", str, multi),
		schema.Prop("title", str, multi),
		schema.Prop("ibmJobTitle", str, multi),
		schema.Prop("c", str, multi),
		schema.Prop("countryName", str, multi),
		schema.Prop("givenName", str, multi),
		schema.Prop("homeStreet", str),
		schema.Prop("homeCity", str),
		schema.Prop("homeStateOrProvinceName", str),
		schema.Prop("homePostalCode", str),
		schema.Prop("homeCountryName", str),
		schema.Prop("businessStreet", str),
		schema.Prop("businessCity", str),
		schema.Prop("businessStateOrProvinceName", str),
		schema.Prop("businessPostalCode", str),
		schema.Prop("businessCountryName", str),
		schema.Prop("description", str, multi),
		schema.Prop("businessCategory", str, multi),
		schema.Prop("seeAlso", str, multi),
		schema.Prop("kerberosId", str),
		schema.Prop("photoURL", str),
		schema.Prop("photoURLThumbnail", str),
		schema.Prop("middleName", str),
		schema.Prop("honorificPrefix", str),
		schema.Prop("honorificSuffix", str),
		schema.Prop("nickName", str),
		schema.Prop("profileUrl", str),
		schema.Prop("timezone", str),
		schema.Prop("locale", str),
		schema.Prop("ims", str, multi),
		schema.Prop("active", boolean),
	},
}
