package metrics

// IncrementDiscussionCreated increments the discussion creation counter
func (m *Metrics) IncrementDiscussionCreated() {
	m.safeExecute("IncrementDiscussionCreated", func() {
		m.DiscussionsCreatedTotal.Inc()
	})
}

// IncrementCommentCreated increments the discussion comment counter
func (m *Metrics) IncrementCommentCreated() {
	m.safeExecute("IncrementCommentCreated", func() {
		m.CommentsCreatedTotal.Inc()
	})
}

// IncrementVoteCast increments the VS vote counter
func (m *Metrics) IncrementVoteCast() {
	m.safeExecute("IncrementVoteCast", func() {
		m.VotesCastTotal.Inc()
	})
}

// IncrementQuoteCreated increments the quote creation counter
func (m *Metrics) IncrementQuoteCreated() {
	m.safeExecute("IncrementQuoteCreated", func() {
		m.QuotesCreatedTotal.Inc()
	})
}

// AddExpAwarded adds gained experience points to the award counter
func (m *Metrics) AddExpAwarded(exp int) {
	m.safeExecute("AddExpAwarded", func() {
		m.ExpAwardedTotal.Add(float64(exp))
	})
}

// IncrementSummaryFallback increments the AI summary fallback counter
func (m *Metrics) IncrementSummaryFallback() {
	m.safeExecute("IncrementSummaryFallback", func() {
		m.SummaryFallbacksTotal.Inc()
	})
}
