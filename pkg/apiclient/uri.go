package apiclient

import (
	"net/url"
	"regexp"
	"strings"
)

var placeholderRE = regexp.MustCompile(`\{([\w-]+)\}`)

// BuildURI appends path to the base URL and substitutes {name} placeholders
// with percent-encoded path parameters. Placeholders without a value are kept
// verbatim. Query parameters are not handled here.
func (cfg Config) BuildURI(path string, pathParams map[string]any) string {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	uri := NormalizeBaseURL(cfg.BaseURL) + path
	return placeholderRE.ReplaceAllStringFunc(uri, func(token string) string {
		key := token[1 : len(token)-1]
		value, ok := pathParams[key]
		if !ok {
			return token
		}
		return url.PathEscape(ParamToString(value))
	})
}

// AppendQuery merges normalized params into the query string of uri. Keys
// already present on uri are replaced. The path portion is left untouched.
func AppendQuery(uri string, params map[string]any) (string, error) {
	normalized := NormalizeParams(params)
	if len(normalized) == 0 {
		return uri, nil
	}

	base, fragment, hasFragment := strings.Cut(uri, "#")
	base, rawQuery, _ := strings.Cut(base, "?")

	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", err
	}
	for k, vv := range normalized {
		query[k] = vv
	}

	out := base + "?" + query.Encode()
	if hasFragment {
		out += "#" + fragment
	}
	return out, nil
}
