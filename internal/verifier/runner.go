package verifier

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/pis-contract/internal/lib/sl"
)

// Result итог одной проверки.
type Result struct {
	Name     string
	Err      error
	Duration time.Duration
}

// Passed сообщает, прошла ли проверка.
func (r Result) Passed() bool {
	return r.Err == nil
}

// Report итог прогона.
type Report struct {
	Results []Result
}

// Failed количество проваленных проверок.
func (r Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.Passed() {
			n++
		}
	}
	return n
}

// Passed количество прошедших проверок.
func (r Report) Passed() int {
	return len(r.Results) - r.Failed()
}

// Runner выполняет проверки последовательно.
type Runner struct {
	env   *Env
	cases []Case
	log   *slog.Logger
}

// NewRunner создаёт Runner для cases.
func NewRunner(env *Env, cases []Case, log *slog.Logger) *Runner {
	return &Runner{
		env:   env,
		cases: cases,
		log:   log,
	}
}

// Filter оставляет проверки, имя которых содержит substr (без учёта регистра).
func Filter(cases []Case, substr string) []Case {
	if substr == "" {
		return cases
	}
	substr = strings.ToLower(substr)
	var out []Case
	for _, c := range cases {
		if strings.Contains(strings.ToLower(c.Name), substr) {
			out = append(out, c)
		}
	}
	return out
}

// Run выполняет проверки по одной. Провал проверки не останавливает прогон;
// отмена ctx прерывает оставшиеся.
func (r *Runner) Run(ctx context.Context) Report {
	var report Report
	for _, c := range r.cases {
		if err := ctx.Err(); err != nil {
			report.Results = append(report.Results, Result{Name: c.Name, Err: err})
			continue
		}

		start := time.Now()
		err := c.Run(ctx, r.env)
		res := Result{Name: c.Name, Err: err, Duration: time.Since(start)}
		report.Results = append(report.Results, res)

		log := r.log.With(slog.String("case", c.Name), slog.Duration("duration", res.Duration))
		if err != nil {
			log.Error("FAIL", sl.Err(err))
		} else {
			log.Info("PASS")
		}
	}
	return report
}
