package db

import "fmt"

// ShowSettingsCLI prints every persisted setting. Meant for the offline
// debug tool, not for server code.
func ShowSettingsCLI(dbPath string) error {
	conn, err := Open(dbPath)
	if err != nil {
		return err
	}
	defer conn.Close()

	rows, err := conn.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return fmt.Errorf("failed to scan setting: %w", err)
		}
		fmt.Printf("%s = %s\n", key, value)
		count++
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if count == 0 {
		fmt.Println("No settings stored yet")
	}
	return nil
}

// SetSettingCLI writes one setting directly, bypassing the running server.
func SetSettingCLI(dbPath, key, value string) error {
	conn, err := Open(dbPath)
	if err != nil {
		return err
	}
	defer conn.Close()
	return UpsertSetting(conn, key, value)
}
