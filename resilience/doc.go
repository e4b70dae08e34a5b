// Package resilience retries operations that fail transiently, such as
// opening a SQLite file that another process holds locked.
//
//	db, err := resilience.Retry(ctx, resilience.RetryConfig{
//	    MaxAttempts:    3,
//	    InitialBackoff: 200 * time.Millisecond,
//	}, func() (*gorm.DB, error) {
//	    return gorm.Open(dialector, cfg)
//	})
package resilience
