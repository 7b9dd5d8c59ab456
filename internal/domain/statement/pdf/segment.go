package pdf

// TransactionBlock is a contiguous run of statement lines believed to
// describe one transaction. DisplayDate is DD/MM/YYYY, inherited from the
// block's own date line or from the most recently seen one; Lines is
// non-empty on every emitted block.
type TransactionBlock struct {
	DisplayDate string
	Lines       []string
}

// segmenter groups a line sequence into transaction blocks. State is two
// variables scoped to one run: the open block, and the last date seen in the
// traversal, which persists across block boundaries so that same-day
// transactions (whose date is not reprinted) inherit it.
type segmenter struct {
	current      *TransactionBlock
	lastSeenDate string
	emitted      []TransactionBlock
}

// feed consumes one line. Rules are applied in priority order: boilerplate,
// date line, no-date transaction start, continuation.
func (s *segmenter) feed(line string) error {
	// Running-balance rows close the open block and are themselves
	// discarded; they must not be misread as transactions.
	if isBoilerplate(line) {
		s.flush()
		return nil
	}

	if d, ok := matchDateLine(line); ok {
		display, err := formatDate(d)
		if err != nil {
			return err
		}
		s.flush()
		s.lastSeenDate = display
		s.current = &TransactionBlock{DisplayDate: display, Lines: []string{line}}
		return nil
	}

	// A type-code line with no date opens a new same-day transaction, but
	// only once a date has been seen: before the first date line these
	// codes can only be header noise.
	if s.lastSeenDate != "" && isTransactionStart(line) {
		s.flush()
		s.current = &TransactionBlock{DisplayDate: s.lastSeenDate, Lines: []string{line}}
		return nil
	}

	if s.current != nil {
		s.current.Lines = append(s.current.Lines, line)
	}
	// No open block: pre-transaction header noise, dropped.
	return nil
}

// flush closes and emits the open block, if any.
func (s *segmenter) flush() {
	if s.current != nil {
		s.emitted = append(s.emitted, *s.current)
		s.current = nil
	}
}

// segmentLines runs the segmenter over a full line sequence, including the
// final flush. Pure function of its input.
func segmentLines(lines []string) ([]TransactionBlock, error) {
	var s segmenter
	for _, line := range lines {
		if err := s.feed(line); err != nil {
			return nil, err
		}
	}
	s.flush()
	return s.emitted, nil
}
