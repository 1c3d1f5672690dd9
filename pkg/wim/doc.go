// Package wim declares the directory entity types: the Entity hierarchy
// (RolePlayer, Party, Person, LoginAccount, PersonAccount, Group,
// Container, OrgContainer, GeographicLocation, Country, Locality, PartyRole)
// and the nested record types they reference (IdentifierType,
// ViewIdentifierType, AddressType).
//
// NewRegistry builds a schema.Registry from these declarations. Person,
// PersonAccount, Group and OrgContainer accept extension properties.
package wim
