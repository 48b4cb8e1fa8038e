// Package disasm turns a Game Boy ROM image into an rgbds-syntax assembly
// listing.
//
// A Session owns every mutable structure of one run: the undecoded region,
// the label table, the work-list and the decoded instructions. Exploration
// starts at the entry point and at any seeded symbol address, follows
// branch and call targets, and stops a linear scan at unconditional control
// transfers. Whatever no instruction claims is emitted as data.
package disasm
