package control

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// A Call describes a client-side DynamicForm request for one or more controls.
type Call struct {
	// Method is the DynamicForm function called: get, post, put or delete.
	Method string

	// Targets are the accessors of the controls requested.
	Targets []string

	// Silent suppresses the loading placeholder while the request is in flight.
	Silent bool

	// Params are sent along as fields.
	Params url.Values

	// Timeout, when positive, delays the request.
	Timeout time.Duration
}

// String renders c as a script statement.
//
//	DynamicForm.get('home-comments', true, '', 5000);
func (c Call) String() string {
	method := strings.ToLower(c.Method)
	if method == "" {
		method = "get"
	}

	var target string
	switch len(c.Targets) {
	case 0:
		target = "''"
	case 1:
		target = quote(c.Targets[0])
	default:
		quoted := make([]string, len(c.Targets))
		for i, t := range c.Targets {
			quoted[i] = quote(t)
		}
		target = "[" + strings.Join(quoted, ", ") + "]"
	}

	if !c.Silent && len(c.Params) == 0 && c.Timeout <= 0 {
		return fmt.Sprintf("DynamicForm.%s(%s);", method, target)
	}

	args := []string{target, strconv.FormatBool(c.Silent), quote(c.Params.Encode())}
	if c.Timeout > 0 {
		args = append(args, strconv.FormatInt(c.Timeout.Milliseconds(), 10))
	}

	return fmt.Sprintf("DynamicForm.%s(%s);", method, strings.Join(args, ", "))
}

// Get schedules refreshing the targets.
func Get(silent bool, timeout time.Duration, targets ...string) string {
	return Call{Method: "get", Targets: targets, Silent: silent, Timeout: timeout}.String()
}

// Post schedules posting the fields of the targets.
func Post(params url.Values, targets ...string) string {
	return Call{Method: "post", Targets: targets, Params: params}.String()
}

// Put schedules putting the fields of the targets.
func Put(params url.Values, targets ...string) string {
	return Call{Method: "put", Targets: targets, Params: params}.String()
}

// Delete schedules deleting the targets.
func Delete(params url.Values, targets ...string) string {
	return Call{Method: "delete", Targets: targets, Params: params}.String()
}

// quote renders s as a single-quoted JavaScript string.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "<", `\x3c`)
	return "'" + r.Replace(s) + "'"
}
