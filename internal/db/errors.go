package db

import "fmt"

func errChatIDRequired(path string) error {
	return fmt.Errorf("%s is a database: pass --chat to select a conversation", path)
}
