package moderation

// Change is an (old, new) pair for one attribute.
type Change[T comparable] struct {
	Old T
	New T
}

// Attributes are the editable punishment columns. Soft and Points are nil when
// the punishment variant has no such column.
type Attributes struct {
	Reason  string
	Expires int64
	Soft    *bool
	Points  *int
}

// Diff holds one Change per attribute whose value differs. Unchanged or
// inapplicable attributes stay nil.
type Diff struct {
	Reason  *Change[string]
	Expires *Change[int64]
	Soft    *Change[bool]
	Points  *Change[int]
}

// ComputeDiff compares the stored attributes with the requested ones using
// strict inequality. A variant attribute is only compared when both sides carry it.
func ComputeDiff(stored Attributes, requested Attributes) Diff {
	d := Diff{
		Reason:  changed(stored.Reason, requested.Reason),
		Expires: changed(stored.Expires, requested.Expires),
	}
	if stored.Soft != nil && requested.Soft != nil {
		d.Soft = changed(*stored.Soft, *requested.Soft)
	}
	if stored.Points != nil && requested.Points != nil {
		d.Points = changed(*stored.Points, *requested.Points)
	}
	return d
}

func (d Diff) Empty() bool {
	return d.Reason == nil && d.Expires == nil && d.Soft == nil && d.Points == nil
}

// Changed lists the changed attribute names in column order.
func (d Diff) Changed() []string {
	out := make([]string, 0, 4)
	if d.Expires != nil {
		out = append(out, "expires")
	}
	if d.Reason != nil {
		out = append(out, "reason")
	}
	if d.Soft != nil {
		out = append(out, "soft")
	}
	if d.Points != nil {
		out = append(out, "points")
	}
	return out
}

func changed[T comparable](old T, next T) *Change[T] {
	if old == next {
		return nil
	}
	return &Change[T]{Old: old, New: next}
}

// Truthy normalises a stored integer flag (tinyint) to a boolean.
func Truthy(v int) bool {
	return v != 0
}

// FlagValue is the stored integer form of a boolean flag.
func FlagValue(b bool) int {
	if b {
		return 1
	}
	return 0
}
