package tokenizer

import (
	"errors"
	"fmt"
	"os"

	"github.com/skillctx/skx/internal/utils"
)

// CountResult captures the outcome of counting a file or byte slice. Counted is
// false when the payload was skipped as binary or non-UTF-8.
type CountResult struct {
	Tokens  int
	Counted bool
}

// CountBytes estimates tokens for the provided data using counter. Payloads
// that classify as binary under utils.IsBinary are skipped rather than counted;
// empty data counts as zero tokens.
func CountBytes(counter Counter, data []byte) (CountResult, error) {
	if counter == nil {
		return CountResult{}, errors.New("nil tokenizer counter")
	}
	if utils.IsBinary(data) {
		return CountResult{Counted: false}, nil
	}
	tokens, countError := counter.CountString(string(data))
	if countError != nil {
		return CountResult{}, fmt.Errorf("counting tokens with %s: %w", counter.Name(), countError)
	}
	return CountResult{Tokens: tokens, Counted: true}, nil
}

// CountFile reads the file at path and estimates its token count.
func CountFile(counter Counter, path string) (CountResult, error) {
	if counter == nil {
		return CountResult{}, errors.New("nil tokenizer counter")
	}
	data, readError := os.ReadFile(path)
	if readError != nil {
		return CountResult{}, readError
	}
	return CountBytes(counter, data)
}
