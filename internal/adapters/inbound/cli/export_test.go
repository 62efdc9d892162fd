package cli

// SetConfirm replaces the confirmation prompt and returns a restore func.
func SetConfirm(f func(message string) (bool, error)) func() {
	prev := confirm
	confirm = f
	return func() { confirm = prev }
}
