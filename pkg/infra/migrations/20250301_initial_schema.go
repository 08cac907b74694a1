package migrations

import (
	"github.com/mindhaven/guardrail/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20250301_initial_schema",
		Name: "Create crisis_keywords, guardrail_logs and alerts tables",

		Up: func(db *gorm.DB) error {
			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS crisis_keywords (
					id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					keyword    TEXT NOT NULL UNIQUE,
					severity   TEXT NOT NULL,
					active     BOOLEAN NOT NULL DEFAULT TRUE,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS guardrail_logs (
					id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					client_id  UUID NOT NULL,
					direction  TEXT NOT NULL,
					reason     TEXT NOT NULL,
					raw_text   TEXT NOT NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_guardrail_logs_client_id
				ON guardrail_logs (client_id, created_at DESC);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS alerts (
					id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					client_id   UUID NOT NULL,
					reason      TEXT NOT NULL,
					details     JSONB NOT NULL DEFAULT '{}',
					resolved    BOOLEAN NOT NULL DEFAULT FALSE,
					created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					resolved_at TIMESTAMPTZ
				);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_alerts_unresolved
				ON alerts (resolved, created_at DESC);
			`).Error; err != nil {
				return err
			}

			// Default keyword set; administrators extend or deactivate it
			// at runtime, rows are never deleted.
			return db.Exec(`
				INSERT INTO crisis_keywords (keyword, severity) VALUES
					('kill myself', 'critical'),
					('end my life', 'critical'),
					('suicide', 'critical'),
					('want to die', 'critical'),
					('overdose', 'high'),
					('hurt myself', 'high'),
					('self harm', 'high'),
					('no reason to live', 'high'),
					('hopeless', 'medium'),
					('give up', 'low')
				ON CONFLICT (keyword) DO NOTHING;
			`).Error
		},

		Down: func(db *gorm.DB) error {
			if err := db.Exec(`DROP TABLE IF EXISTS alerts;`).Error; err != nil {
				return err
			}
			if err := db.Exec(`DROP TABLE IF EXISTS guardrail_logs;`).Error; err != nil {
				return err
			}
			return db.Exec(`DROP TABLE IF EXISTS crisis_keywords;`).Error
		},
	})
}
