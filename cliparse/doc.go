// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

	if err := cliparse.LoadEnvFile(".env"); err != nil {
		log.Fatal(err)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type (sqlite or postgres)
	-page-size    Rows per list page
	-token-salt   Salt for API key and client secret hashes

# Environment Variables

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	PAGE_SIZE     → -page-size
	TOKEN_SALT    → -token-salt

CLI flags take precedence over environment variables, which take precedence
over the .env file. DATABASE_URL and TOKEN_SALT are required.
*/
package cliparse
