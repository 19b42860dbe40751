/*
aggregate.go - Fold classified lines into ordered sections

PURPOSE:
  The single reduction step shared by all three statement builders. Lines
  come in classified, sections come out grouped with exact subtotals.

ORDERING:
  Sections appear in first-occurrence order of their bucket, so the same
  line slice always yields the same section slice. Builders that want a
  canonical presentation (revenue before COGS regardless of record order)
  reorder afterwards with Canonical.

ARITHMETIC:
  Subtotals are int64 minor-unit additions. No floating point anywhere in
  this path, so subtotal == sum(items) holds exactly, always.
*/
package engine

// Aggregate groups lines by bucket, preserving first-occurrence order.
// Pure reduction: the input slice is not modified, zero-amount lines are
// kept so counts stay consistent with the source record count.
func Aggregate(lines []ClassifiedLine) []Section {
	index := make(map[BucketKind]int)
	sections := make([]Section, 0)

	for _, line := range lines {
		i, ok := index[line.Bucket]
		if !ok {
			i = len(sections)
			index[line.Bucket] = i
			sections = append(sections, Section{
				Bucket: line.Bucket,
				Name:   line.Bucket.Name(),
			})
		}
		sections[i].Items = append(sections[i].Items, line)
		sections[i].Subtotal = sections[i].Subtotal.Add(line.Amount)
	}

	return sections
}

// Canonical reorders aggregated sections into the given bucket order,
// inserting an empty zero-subtotal section for any bucket with no lines.
// Buckets not named in the order are dropped; classification never emits
// them for the statement family that calls this.
func Canonical(sections []Section, order []BucketKind) []Section {
	byBucket := make(map[BucketKind]Section, len(sections))
	for _, s := range sections {
		byBucket[s.Bucket] = s
	}

	out := make([]Section, 0, len(order))
	for _, b := range order {
		s, ok := byBucket[b]
		if !ok {
			s = Section{Bucket: b, Name: b.Name(), Items: []ClassifiedLine{}}
		}
		out = append(out, s)
	}
	return out
}

// SubtotalOf returns the subtotal for a bucket within aggregated sections,
// zero when the bucket is absent.
func SubtotalOf(sections []Section, b BucketKind) Money {
	for _, s := range sections {
		if s.Bucket == b {
			return s.Subtotal
		}
	}
	return 0
}
