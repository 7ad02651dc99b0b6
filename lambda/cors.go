package lambda

// corsHeaders is the cross-origin policy applied to every response: any
// origin, the two methods the gateway routes here. Built once per process.
var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET, POST",
}

// withCORS returns a response header map carrying the cross-origin policy
// plus the given content type.
func withCORS(contentType string) map[string]string {
	headers := make(map[string]string, len(corsHeaders)+1)
	for k, v := range corsHeaders {
		headers[k] = v
	}
	headers["Content-Type"] = contentType
	return headers
}
