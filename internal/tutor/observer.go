package tutor

// Observer receives tutor activity counts. *metrics.Metrics implements it.
type Observer interface {
	ObserveSubmission(kind, result string)
	ObserveHint(kind, source string)
	ObserveCompletion(kind string)
	ObserveQuiz(level string)
}

// Submission results reported to the Observer.
const (
	resultCorrect   = "correct"
	resultIncorrect = "incorrect"
	resultInvalid   = "invalid"
)

type nopObserver struct{}

func (nopObserver) ObserveSubmission(string, string) {}
func (nopObserver) ObserveHint(string, string)       {}
func (nopObserver) ObserveCompletion(string)         {}
func (nopObserver) ObserveQuiz(string)               {}
