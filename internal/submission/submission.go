// Package submission defines the form submission record shared by sources, stores and views.
package submission

import (
	"strings"
)

// Well-known data keys used for display.
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldEmail     = "email"
)

// Data holds the named fields of a submission. The controller never interprets it.
type Data map[string]string

// Submission is a single form submission.
type Submission struct {
	ID    string `json:"id"`
	Data  Data   `json:"data"`
	Liked bool   `json:"liked"`
}

// New creates a submission with a copy of data.
func New(id string, data Data) Submission {
	return Submission{ID: id, Data: data.Clone()}
}

// Clone returns a deep copy of the submission.
func (s Submission) Clone() Submission {
	s.Data = s.Data.Clone()
	return s
}

// AsLiked returns a copy of the submission marked as liked.
func (s Submission) AsLiked() Submission {
	c := s.Clone()
	c.Liked = true
	return c
}

// Clone returns a copy of d. A nil map stays nil.
func (d Data) Clone() Data {
	if d == nil {
		return nil
	}
	c := make(Data, len(d))
	for k, v := range d {
		c[k] = v
	}
	return c
}

// FirstName returns the firstName field.
func (d Data) FirstName() string { return d[FieldFirstName] }

// LastName returns the lastName field.
func (d Data) LastName() string { return d[FieldLastName] }

// Email returns the email field.
func (d Data) Email() string { return d[FieldEmail] }

// FullName joins first and last name, skipping empty parts.
func (d Data) FullName() string {
	parts := make([]string, 0, 2)
	for _, p := range []string{d.FirstName(), d.LastName()} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// CloneAll deep-copies a slice of submissions.
func CloneAll(items []Submission) []Submission {
	if items == nil {
		return nil
	}
	out := make([]Submission, len(items))
	for i, s := range items {
		out[i] = s.Clone()
	}
	return out
}

// IndexOf returns the position of the first submission with id, or -1.
func IndexOf(items []Submission, id string) int {
	for i, s := range items {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Without returns the items whose id differs from id, preserving order.
func Without(items []Submission, id string) []Submission {
	out := make([]Submission, 0, len(items))
	for _, s := range items {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}
