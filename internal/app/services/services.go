// Package services holds the business rules of the records store.
//
// RecordsService validates every mutation, checks foreign key targets and serializes
// enrollments per (student, course) pair before delegating to a RecordsRepository.
package services
