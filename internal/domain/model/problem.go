package model

import (
	"fmt"
	"strconv"
)

// ProblemID identifies a problem globally: contest id plus the index
// within the contest ("A", "B", "C1", ...).
type ProblemID struct {
	ContestID int    `json:"contest_id"`
	Index     string `json:"index"`
}

// Key returns the canonical lookup key, e.g. "1700-A".
func (p ProblemID) Key() string {
	return strconv.Itoa(p.ContestID) + "-" + p.Index
}

func (p ProblemID) String() string {
	return fmt.Sprintf("%d%s", p.ContestID, p.Index)
}

// URL returns the public problem page.
func (p ProblemID) URL() string {
	return fmt.Sprintf("https://codeforces.com/problemset/problem/%d/%s", p.ContestID, p.Index)
}

// Problem is an immutable catalog entry, shared by reference across
// users' submissions. Rating 0 means the problem is unrated.
type Problem struct {
	ID     ProblemID `json:"id"`
	Name   string    `json:"name"`
	Rating int       `json:"rating,omitempty"`
	Tags   []string  `json:"tags,omitempty"`
}

// Rated reports whether the problem carries a difficulty rating.
func (p Problem) Rated() bool {
	return p.Rating > 0
}
