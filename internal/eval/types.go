package eval

// #region eval-result
// Result is the outcome of running all three exchangeability algorithms
// over the same factor pair.
type Result struct {
	Naive  bool
	Filter bool
	Deft   bool
	Agree  bool
	Reason string
}

// #endregion eval-result
