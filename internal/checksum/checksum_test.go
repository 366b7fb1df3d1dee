package checksum

import "testing"

func TestSum(t *testing.T) {
	// sha256 of the empty input.
	want := "sha256:e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := Sum(nil); got != want {
		t.Errorf("Sum(nil) = %q, want %q", got, want)
	}
	if Sum([]byte("a")) == Sum([]byte("b")) {
		t.Error("different inputs share a checksum")
	}
}
