package output

import (
	"errors"
	"time"

	"github.com/pfrederiksen/six-degrees/internal/search"
	"github.com/pfrederiksen/six-degrees/internal/wiki"
)

func sampleReport() *Report {
	a := wiki.Ref{Title: "Kevin Bacon", Lang: "en"}
	b := wiki.Ref{Title: "Albert Einstein", Lang: "en"}
	return NewReport(a, b, search.Result{
		AtoB:    search.Path{"Kevin Bacon", "Physics", "Albert Einstein"},
		ErrBtoA: errors.New("rate limit wait: context canceled"),
	}, 5, 1500*time.Millisecond)
}
