package port

// LineSource yields raw input lines one at a time. Next returns io.EOF after
// the last line; any other error is fatal to the consuming run.
type LineSource interface {
	Next() (string, error)
}
