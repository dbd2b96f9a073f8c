package postgres

// allLinks unions the three signup link tables with the charge type each one produces.
const allLinks = `SELECT id, account_id, description, 'link_cadastro' AS charge_type, active, uses_count, created_at
	FROM signup_links
UNION ALL
SELECT id, account_id, description, charge_type, active, uses_count, created_at
	FROM subscription_signup_links
UNION ALL
SELECT id, account_id, description, 'pix_auto' AS charge_type, active, uses_count, created_at
	FROM pix_automatic_signup_links`
