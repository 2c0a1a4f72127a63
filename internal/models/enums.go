package models

import "gorm.io/gorm"

// EnsureEnums creates the postgres enum types backing the status columns.
// Only called on the postgres backend; sqlite ignores column type names.
func EnsureEnums(db *gorm.DB) error {
	return db.Exec(`
		DO $$
		BEGIN
			IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'supplier_status') THEN
				CREATE TYPE supplier_status AS ENUM (
					'active',
					'pending_approval',
					'rejected',
					'suspended',
					'deleted'
				);
			END IF;
			IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'buyer_status') THEN
				CREATE TYPE buyer_status AS ENUM ('active', 'suspended');
			END IF;
			IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'product_status') THEN
				CREATE TYPE product_status AS ENUM (
					'draft',
					'pending',
					'approved',
					'rejected',
					'suspended',
					'deleted'
				);
			END IF;
			IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'inquiry_status') THEN
				CREATE TYPE inquiry_status AS ENUM ('pending', 'replied', 'deleted');
			END IF;
			IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'inquiry_approval_status') THEN
				CREATE TYPE inquiry_approval_status AS ENUM ('pending', 'approved', 'rejected');
			END IF;
		END
		$$;
	`).Error
}
