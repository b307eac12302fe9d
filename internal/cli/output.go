package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Account:
		o.printAccount(v)
	case AuthResult:
		o.printAuthResult(v)
	case PasswordCheckResult:
		o.printPasswordCheck(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Account response type (matches API)
type Account struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birthdate"`
	Address   string `json:"address"`
	Role      string `json:"role"`
}

// AuthResult combines account and token
type AuthResult struct {
	Account Account `json:"account"`
	Token   string  `json:"token"`
}

// PasswordCheckResult is the advisory policy breakdown
type PasswordCheckResult struct {
	MeetsLength  bool   `json:"meets_length"`
	HasUppercase bool   `json:"has_uppercase"`
	HasDigit     bool   `json:"has_digit"`
	HasSpecial   bool   `json:"has_special"`
	IsStrong     bool   `json:"is_strong"`
	Score        int    `json:"score"`
	Label        string `json:"label"`
}

// HealthResult response type
type HealthResult struct {
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	AccountCount int       `json:"account_count"`
}

func (o *Output) printAccount(a Account) {
	fmt.Printf("Account: %s (%s)\n", a.Name, a.ID)
	fmt.Printf("Username: %s\n", a.Username)
	fmt.Printf("Email: %s\n", a.Email)
	fmt.Printf("Role: %s\n", a.Role)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printAccount(a.Account)
	fmt.Printf("Token: %s\n", a.Token)
}

func (o *Output) printPasswordCheck(p PasswordCheckResult) {
	check := func(ok bool) string {
		if ok {
			return "yes"
		}
		return "no"
	}
	fmt.Printf("Length >= 10: %s\n", check(p.MeetsLength))
	fmt.Printf("Uppercase: %s\n", check(p.HasUppercase))
	fmt.Printf("Digit: %s\n", check(p.HasDigit))
	fmt.Printf("Special: %s\n", check(p.HasSpecial))
	fmt.Printf("Score: %d/4", p.Score)
	if p.Label != "" {
		fmt.Printf(" (%s)", p.Label)
	}
	fmt.Println()
	fmt.Printf("Strong: %s\n", check(p.IsStrong))
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
	fmt.Printf("Timestamp: %s\n", h.Timestamp.Format(time.RFC3339))
	fmt.Printf("Accounts: %d\n", h.AccountCount)
}
