package webhook

import (
	"fmt"
)

// ExtractOutputContent turns an arbitrary decoded JSON value into the
// {content, title?} shape shown on the dashboard. It never fails: values it
// cannot interpret are kept under raw_data, and unexpected nested shapes are
// reported under parse_error.
func ExtractOutputContent(value any) (result map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			result = parseError(fmt.Errorf("%v", r), value)
		}
	}()

	switch v := value.(type) {
	case []any:
		if len(v) == 0 {
			break
		}
		first, ok := v[0].(map[string]any)
		if !ok {
			break
		}
		output, ok := first["output"]
		if !ok {
			break
		}
		result = map[string]any{"content": output}
		title, found, err := dingtalkTitle(first)
		if err != nil {
			return parseError(err, value)
		}
		if found {
			result["title"] = title
		}
		return result
	case map[string]any:
		if output, ok := v["output"]; ok {
			return map[string]any{"content": output}
		}
		return v
	}

	return map[string]any{"raw_data": value}
}

// dingtalkTitle looks up dingtalkPayload.markdown.title. Missing or null
// levels are not an error; a level that is present but not an object is.
func dingtalkTitle(item map[string]any) (string, bool, error) {
	payload, ok := item["dingtalkPayload"]
	if !ok || payload == nil {
		return "", false, nil
	}
	dingtalk, ok := payload.(map[string]any)
	if !ok {
		return "", false, fmt.Errorf("dingtalkPayload is %T, not an object", payload)
	}

	md, ok := dingtalk["markdown"]
	if !ok || md == nil {
		return "", false, nil
	}
	markdown, ok := md.(map[string]any)
	if !ok {
		return "", false, fmt.Errorf("dingtalkPayload.markdown is %T, not an object", md)
	}

	title, ok := markdown["title"]
	if !ok || title == nil {
		return "", false, nil
	}
	return fmt.Sprint(title), true, nil
}

func parseError(err error, value any) map[string]any {
	return map[string]any{
		"parse_error": "Unable to extract content: " + err.Error(),
		"raw_data":    fmt.Sprint(value),
	}
}
