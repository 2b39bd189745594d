package restyutil

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

func writeHeaders(out *strings.Builder, headers http.Header) {
	for k, vals := range headers {
		for _, v := range vals {
			fmt.Fprintf(out, "%s: %s\n", k, v)
		}
	}
}

func requestBody(req *http.Request) string {
	if req.GetBody == nil {
		return ""
	}
	body, err := req.GetBody()
	if err != nil {
		return fmt.Sprintf("<failed to get request body: %s>", err)
	}
	read, err := io.ReadAll(body)
	if err != nil {
		return fmt.Sprintf("<failed to read request body: %s>", err)
	}
	return string(read)
}

// formatExchange renders a completed exchange as readable plain text, the
// request first and the response below it.
func formatExchange(res *resty.Response) string {
	var out strings.Builder

	out.WriteString("---- REQUEST ----\n\n")
	fmt.Fprintf(&out, "%s %s\n\n", res.Request.Method, res.Request.URL)
	writeHeaders(&out, res.Request.RawRequest.Header)
	out.WriteString("\n")
	out.WriteString(requestBody(res.Request.RawRequest))

	out.WriteString("\n\n---- RESPONSE ----\n\n")
	url := res.Request.URL
	if redirected, err := res.RawResponse.Location(); err == nil {
		url = redirected.String()
	}
	fmt.Fprintf(&out, "%d %s\n\n", res.StatusCode(), url)
	writeHeaders(&out, res.Header())
	out.WriteString("\n")
	out.WriteString(res.String())

	return out.String()
}
