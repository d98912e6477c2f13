package intake

import (
	"path/filepath"
	"strings"
)

// Policy describes which uploads are acceptable.
type Policy struct {
	// Accept maps a MIME category (e.g. "image", "application/pdf") to the
	// file extensions allowed for it.
	Accept       map[string][]string
	MaxSizeBytes int64
	Multiple     bool
}

// File is the metadata the intake step validates. Reading file content is the
// caller's concern; intake performs no I/O.
type File struct {
	Name string
	Size int64
}

// Rejection pairs a rejected file with its human-readable reasons.
type Rejection struct {
	File    File
	Reasons []string
}

// Result partitions one intake call. Accepted and Rejected are disjoint and
// together cover every input file, preserving input order.
type Result struct {
	Accepted []File
	Rejected []Rejection
}

const defaultMaxSizeBytes = 10 << 20 // 10 MiB

// DefaultPolicy accepts images, video, PDF and Word documents up to 10 MiB,
// multiple files per batch.
func DefaultPolicy() Policy {
	return Policy{
		Accept: map[string][]string{
			"image":           {".png", ".jpg", ".jpeg", ".gif"},
			"video":           {".mp4", ".mov", ".avi"},
			"application/pdf": {".pdf"},
			"application/msword": {
				".doc", ".docx",
			},
		},
		MaxSizeBytes: defaultMaxSizeBytes,
		Multiple:     true,
	}
}

// Check returns the policy violations for the file at position index within
// its batch, or nil when the file is acceptable. The index matters only for
// single-file policies.
func (p Policy) Check(index int, f File) []string {
	p = p.normalized()
	var reasons []string
	if !p.Multiple && index > 0 {
		reasons = append(reasons, "multiple files not allowed")
	}
	if f.Size > p.MaxSizeBytes {
		reasons = append(reasons, "file too large")
	}
	if !extensionAccepted(p, f.Name) {
		reasons = append(reasons, "type not accepted")
	}
	return reasons
}

// Evaluate applies the policy to the input files.
func Evaluate(files []File, policy Policy) Result {
	policy = policy.normalized()

	var out Result
	for i, f := range files {
		if reasons := policy.Check(i, f); len(reasons) > 0 {
			out.Rejected = append(out.Rejected, Rejection{File: f, Reasons: reasons})
			continue
		}
		out.Accepted = append(out.Accepted, f)
	}
	return out
}

func (p Policy) normalized() Policy {
	if p.Accept == nil {
		p = DefaultPolicy()
	}
	if p.MaxSizeBytes <= 0 {
		p.MaxSizeBytes = defaultMaxSizeBytes
	}
	return p
}

func extensionAccepted(policy Policy, name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	for _, exts := range policy.Accept {
		for _, allowed := range exts {
			if ext == strings.ToLower(allowed) {
				return true
			}
		}
	}
	return false
}
