package cmd

import "time"

// Config carries everything the composition root needs, loaded from the
// environment at startup.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret string

	// KafkaBrokers is a comma-separated broker list; empty disables the
	// Kafka event mirror.
	KafkaBrokers string
	KafkaTopic   string

	// Cron specs for the background jobs; empty uses the jobs' defaults.
	RebroadcastSpec   string
	PresenceSweepSpec string

	// PresenceStaleAfter flips partners offline after this long without a
	// location report; zero uses the job default.
	PresenceStaleAfter time.Duration
}
