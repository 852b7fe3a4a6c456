// Package ddexmap resolves DDEX terminology tags to documentation URLs.
// It crawls a small set of allow-listed documentation sites breadth-first,
// scores every fetched page against each tag, and reconciles the best
// candidates into an existing tag map, clearing links that are no longer
// alive.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, sqlite/).
package ddexmap
