package service

import (
	"context"
	"log"
	"time"

	"dine-easy/internal/notify"
)

// Reporter sends the end-of-day summary and prunes old ledger entries.
type Reporter struct {
	Store         StoreInterface
	Notifier      Notifier
	Location      *time.Location
	RetentionDays int
}

func NewReporter(store StoreInterface, notifier Notifier, location *time.Location, retentionDays int) *Reporter {
	if location == nil {
		location = time.UTC
	}
	return &Reporter{
		Store:         store,
		Notifier:      notifier,
		Location:      location,
		RetentionDays: retentionDays,
	}
}

// Run reports the day that just ended at every local midnight until ctx is
// cancelled.
func (r *Reporter) Run(ctx context.Context) {
	for {
		now := time.Now().In(r.Location)
		next := StartOfDay(now).AddDate(0, 0, 1)
		timer := time.NewTimer(next.Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		day := next.AddDate(0, 0, -1)
		if err := r.Report(ctx, day); err != nil {
			log.Printf("Error reporting %s: %v", day.Format("2006-01-02"), err)
		}
	}
}

// Report summarizes the local day containing day, sends it, then deletes
// entries older than the retention window measured from that day.
func (r *Reporter) Report(ctx context.Context, day time.Time) error {
	from := StartOfDay(day.In(r.Location))
	to := from.AddDate(0, 0, 1)

	summary, err := r.Store.Summarize(ctx, from, to)
	if err != nil {
		return err
	}

	if err := r.Notifier.DailySummary(ctx, notify.Data{
		"date":             from.Format("02/01/2006"),
		"totalIncome":      summary.TotalIncome,
		"totalExpense":     summary.TotalExpense,
		"netAmount":        summary.Net(),
		"transactionCount": summary.TransactionCount,
	}); err != nil {
		log.Printf("Warning: failed to send daily summary: %v", err)
	}

	if r.RetentionDays <= 0 {
		return nil
	}
	cutoff := to.AddDate(0, 0, -r.RetentionDays)
	deleted, err := r.Store.DeleteBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if deleted > 0 {
		log.Printf("Pruned %d ledger entries before %s", deleted, cutoff.Format("2006-01-02"))
	}
	return nil
}

func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
