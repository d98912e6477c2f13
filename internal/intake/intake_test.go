package intake

import "testing"

func TestEvaluatePartitionIsExhaustive(t *testing.T) {
	files := []File{
		{Name: "a.png", Size: 100},
		{Name: "b.exe", Size: 100},
		{Name: "c.pdf", Size: 20 << 20},
		{Name: "d.mov", Size: 1 << 20},
	}
	res := Evaluate(files, DefaultPolicy())

	if len(res.Accepted)+len(res.Rejected) != len(files) {
		t.Fatalf("accepted (%d) + rejected (%d) != input (%d)",
			len(res.Accepted), len(res.Rejected), len(files))
	}

	seen := map[string]bool{}
	for _, f := range res.Accepted {
		seen[f.Name] = true
	}
	for _, r := range res.Rejected {
		if seen[r.File.Name] {
			t.Fatalf("file %s in both accepted and rejected", r.File.Name)
		}
		if len(r.Reasons) == 0 {
			t.Fatalf("rejected file %s has no reasons", r.File.Name)
		}
	}
}

func TestEvaluateOversizedJPEG(t *testing.T) {
	files := []File{
		{Name: "photo.jpeg", Size: 15 << 20},
		{Name: "floorplan.png", Size: 2 << 20},
	}
	res := Evaluate(files, DefaultPolicy())

	if len(res.Accepted) != 1 || res.Accepted[0].Name != "floorplan.png" {
		t.Fatalf("expected only floorplan.png accepted, got %v", res.Accepted)
	}
	if len(res.Rejected) != 1 {
		t.Fatalf("expected one rejection, got %d", len(res.Rejected))
	}
	rej := res.Rejected[0]
	if rej.File.Name != "photo.jpeg" {
		t.Fatalf("expected photo.jpeg rejected, got %s", rej.File.Name)
	}
	if len(rej.Reasons) != 1 || rej.Reasons[0] != "file too large" {
		t.Fatalf("expected [file too large], got %v", rej.Reasons)
	}
}

func TestEvaluateRejectsUnknownType(t *testing.T) {
	res := Evaluate([]File{{Name: "malware.exe", Size: 10}}, DefaultPolicy())
	if len(res.Accepted) != 0 {
		t.Fatalf("expected no accepted files")
	}
	if got := res.Rejected[0].Reasons; len(got) != 1 || got[0] != "type not accepted" {
		t.Fatalf("expected [type not accepted], got %v", got)
	}
}

func TestEvaluateAccumulatesReasons(t *testing.T) {
	res := Evaluate([]File{{Name: "huge.exe", Size: 50 << 20}}, DefaultPolicy())
	if len(res.Rejected) != 1 {
		t.Fatalf("expected one rejection")
	}
	if len(res.Rejected[0].Reasons) != 2 {
		t.Fatalf("expected two reasons, got %v", res.Rejected[0].Reasons)
	}
}

func TestEvaluateSingleFilePolicy(t *testing.T) {
	policy := DefaultPolicy()
	policy.Multiple = false

	files := []File{
		{Name: "first.pdf", Size: 100},
		{Name: "second.pdf", Size: 100},
	}
	res := Evaluate(files, policy)

	if len(res.Accepted) != 1 || res.Accepted[0].Name != "first.pdf" {
		t.Fatalf("expected only first.pdf accepted, got %v", res.Accepted)
	}
	if len(res.Rejected) != 1 || res.Rejected[0].Reasons[0] != "multiple files not allowed" {
		t.Fatalf("expected second file rejected for multiplicity, got %v", res.Rejected)
	}
}

func TestEvaluateNoExtension(t *testing.T) {
	res := Evaluate([]File{{Name: "README", Size: 10}}, DefaultPolicy())
	if len(res.Accepted) != 0 {
		t.Fatalf("expected extension-less file rejected")
	}
}

func TestCheckDecidesPerPosition(t *testing.T) {
	policy := DefaultPolicy()

	// Same name, different sizes: the decision belongs to the position,
	// not the name.
	if got := policy.Check(0, File{Name: "photo.png", Size: 11 << 20}); len(got) != 1 || got[0] != "file too large" {
		t.Fatalf("expected [file too large], got %v", got)
	}
	if got := policy.Check(1, File{Name: "photo.png", Size: 1 << 10}); got != nil {
		t.Fatalf("expected no reasons, got %v", got)
	}

	policy.Multiple = false
	if got := policy.Check(1, File{Name: "photo.png", Size: 1 << 10}); len(got) != 1 || got[0] != "multiple files not allowed" {
		t.Fatalf("expected [multiple files not allowed], got %v", got)
	}
}

func TestEvaluateZeroPolicyFallsBack(t *testing.T) {
	res := Evaluate([]File{{Name: "a.png", Size: 10}}, Policy{})
	if len(res.Accepted) != 1 {
		t.Fatalf("expected default policy fallback to accept a.png")
	}
}
