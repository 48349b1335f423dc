// Package core provides the business logic for the nonprofit site and its
// admin CMS.
//
// This package holds all domain logic independent of any UI or transport
// layer. It can be used by web handlers, CLI commands, or tests without
// modification.
//
// # Architecture
//
// The package is organized around several key concepts:
//
//   - Resource Definitions: Registered via the registry, each resource has
//     field specs that drive validation, admin forms and list tables.
//   - Service: The main entry point for all operations (list, edit, public
//     forms, newsletter).
//   - Store: Persistence behind a small interface, implemented by the
//     postgres and memory packages.
//   - Audit: Admin changes are recorded in the audit_log resource.
//
// # Resource Registry
//
// Resources are registered at init time using [Register]:
//
//	core.Register(ResourceDefinition{
//	    Info: ResourceInfo{Key: "articles", Group: "Content", Label: "Articles"},
//	    Fields: []FieldSpec{
//	        {Name: "title", Required: true, Type: FieldText, Searchable: true},
//	        {Name: "published", Type: FieldBool, Filterable: true},
//	    },
//	    SlugFrom: "title",
//	})
//
// # Admin Lists
//
// [Service.List] loads a resource's rows and hands them to the tabledata
// processor, which filters, sorts and paginates in memory:
//
//  1. Search text is matched against the searchable fields
//  2. Filters apply only to filterable fields
//  3. Unknown sort columns fall back to the resource's default sort
//  4. The page is cut and pagination buttons computed
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - DB001-DB007: Database errors (duplicates, constraints, connections)
//   - VAL000-VAL006: Validation errors (formats, choices, video links)
//   - NF001, RES001-RES002: Missing records and resources
//   - NEWS001: Newsletter already sent
//   - AUTH001-AUTH002: Sign-in problems
//
// # Audit Logging
//
// Admin modifications are recorded in the audit log with severity levels:
//
//   - Low: Sign-in and sign-out
//   - Medium: Creates and updates
//   - High: Deletions, failed sign-ins
//   - Critical: Newsletter sends
package core
