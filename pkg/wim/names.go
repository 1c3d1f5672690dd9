package wim

// Entity type names.
const (
	TypeEntity             = "Entity"
	TypeRolePlayer         = "RolePlayer"
	TypeParty              = "Party"
	TypePartyRole          = "PartyRole"
	TypePerson             = "Person"
	TypeLoginAccount       = "LoginAccount"
	TypePersonAccount      = "PersonAccount"
	TypeGroup              = "Group"
	TypeContainer          = "Container"
	TypeOrgContainer       = "OrgContainer"
	TypeGeographicLocation = "GeographicLocation"
	TypeCountry            = "Country"
	TypeLocality           = "Locality"
)

// Nested record type names.
const (
	TypeIdentifier     = "IdentifierType"
	TypeViewIdentifier = "ViewIdentifierType"
	TypeAddress        = "AddressType"
)
