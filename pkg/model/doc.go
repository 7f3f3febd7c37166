// Package model holds the editable form state behind a hotel configuration:
// three independent, ordered collections of partners, room types and rate
// plans. Each row carries a stable identifier so front ends can address it for
// edits, removal and reordering without relying on its position. Collections
// are backed by a linked list plus an identifier index, so removing or moving
// a row never shifts the rest of the collection.
//
// Field values are stored exactly as typed. Trimming, number parsing and code
// splitting happen later in the validation and document packages.
package model
