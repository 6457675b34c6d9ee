package cli

import (
	"encoding/json"
	"fmt"
	"os"
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

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case LoginResult:
		o.printLoginResult(v)
	case RegisterResult:
		o.printRegisterResult(v)
	case CreditResult:
		o.printCreditResult(v)
	case BroadcastResult:
		o.printBroadcastResult(v)
	case LiveProxyResult:
		o.printLiveProxyResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Balance  float64 `json:"balance"`
	IsAdmin  bool    `json:"isAdmin"`
}

// RegisterResult response type
type RegisterResult struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// LoginResult response type
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CreditResult response type
type CreditResult struct {
	Message string `json:"message"`
	User    struct {
		Username string  `json:"username"`
		Balance  float64 `json:"balance"`
	} `json:"user"`
}

// BroadcastResult response type
type BroadcastResult struct {
	Status      string `json:"status"`
	Broadcasted string `json:"broadcasted"`
}

// LiveResult is the upstream live payload
type LiveResult struct {
	Twod  string `json:"twod"`
	Set   string `json:"set"`
	Value string `json:"value"`
	Time  string `json:"time"`
}

// LiveProxyResult response type
type LiveProxyResult struct {
	Live LiveResult `json:"live"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printUser(u User) {
	adminStr := "no"
	if u.IsAdmin {
		adminStr = "yes"
	}
	fmt.Printf("User: %s (%s)\n", u.Username, u.ID)
	fmt.Printf("Balance: %.2f\n", u.Balance)
	fmt.Printf("Admin: %s\n", adminStr)
}

func (o *Output) printRegisterResult(r RegisterResult) {
	fmt.Println(r.Message)
	o.printUser(r.User)
}

func (o *Output) printLoginResult(l LoginResult) {
	o.printUser(l.User)
	fmt.Printf("Token: %s\n", l.Token)
}

func (o *Output) printCreditResult(c CreditResult) {
	fmt.Println(c.Message)
	fmt.Printf("User: %s\n", c.User.Username)
	fmt.Printf("Balance: %.2f\n", c.User.Balance)
}

func (o *Output) printBroadcastResult(b BroadcastResult) {
	fmt.Printf("Status: %s\n", b.Status)
	fmt.Printf("Broadcasted: %s\n", b.Broadcasted)
}

func (o *Output) printLiveProxyResult(l LiveProxyResult) {
	fmt.Printf("2D: %s\n", l.Live.Twod)
	fmt.Printf("Set: %s\n", l.Live.Set)
	fmt.Printf("Value: %s\n", l.Live.Value)
	fmt.Printf("Time: %s\n", l.Live.Time)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
