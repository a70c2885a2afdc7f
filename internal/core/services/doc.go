// Package services implements the driving ports on top of the driven ones.
//
// LibraryService owns the document collection: ingestion through the
// chunker, lifecycle mutations with write-through persistence, and
// listener fan-out. RetrievalService ranks chunks against queries and
// formats the winners for prompt injection.
package services
