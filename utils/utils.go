package utils

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"

	"vehicle-shipping/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jinzhu/now"
)

// ActorFromToken extracts the acting user's identifier from the Authorization
// header without re-verifying the signature (the auth middleware has already
// done that).
func ActorFromToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", fmt.Errorf("authorization header missing")
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return "", fmt.Errorf("invalid token format")
	}

	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(tokenParts[1], jwt.MapClaims{})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok {
		if email, ok := claims["email"].(string); ok && email != "" {
			return email, nil
		}
		if username, ok := claims["username"].(string); ok && username != "" {
			return username, nil
		}
	}

	return "", fmt.Errorf("actor not found in token")
}

// ValidatePhoneNumber validates an international phone number.
// Allows an optional leading + followed by 7 to 15 digits.
func ValidatePhoneNumber(phone string) bool {
	phone = strings.TrimSpace(phone)

	pattern := `^\+?[0-9]{7,15}$`
	re := regexp.MustCompile(pattern)

	return re.MatchString(phone)
}

// GenerateTempPassword produces a random one-time password for portal
// invitations.
func GenerateTempPassword(length int) (string, error) {
	if length <= 0 {
		length = 12
	}
	const charset = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz23456789"
	password := make([]byte, length)
	for i := range password {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		password[i] = charset[idx.Int64()]
	}
	return string(password), nil
}

// ParsePagination reads page/per_page query params with sane defaults.
func ParsePagination(c *fiber.Ctx) (page, perPage int) {
	page, _ = strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ = strconv.Atoi(c.Query("per_page", "20"))
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return page, perPage
}

// ParsePeriod resolves a named reporting period to an explicit interval.
// Custom periods read date_from/date_to query params (YYYY-MM-DD).
func ParsePeriod(c *fiber.Ctx) (start, end time.Time, err error) {
	ref := time.Now()
	end = ref
	switch c.Query("period", "30_days") {
	case "7_days":
		start = ref.AddDate(0, 0, -7)
	case "30_days":
		start = ref.AddDate(0, 0, -30)
	case "90_days":
		start = ref.AddDate(0, 0, -90)
	case "current_month":
		start = now.With(ref).BeginningOfMonth()
	case "ytd":
		start = now.With(ref).BeginningOfYear()
	case "custom":
		start, err = time.Parse("2006-01-02", c.Query("date_from"))
		if err != nil {
			return start, end, fmt.Errorf("invalid date_from: %w", err)
		}
		end, err = time.Parse("2006-01-02", c.Query("date_to"))
		if err != nil {
			return start, end, fmt.Errorf("invalid date_to: %w", err)
		}
		end = end.Add(24*time.Hour - time.Nanosecond)
	default:
		return start, end, fmt.Errorf("unknown period")
	}
	return start, end, nil
}

// sanitizeRequestBody sanitizes request body for file uploads and large content
func sanitizeRequestBody(c *fiber.Ctx) string {
	contentType := c.Get("Content-Type")
	if strings.Contains(contentType, "multipart/form-data") {
		formData := make(map[string]interface{})

		if form, err := c.MultipartForm(); err == nil {
			for key, values := range form.Value {
				if len(values) > 0 {
					formData[key] = values[0]
				}
			}

			for key, files := range form.File {
				fileInfo := make([]map[string]interface{}, len(files))
				for i, file := range files {
					fileInfo[i] = map[string]interface{}{
						"filename": file.Filename,
						"size":     file.Size,
						"content":  "[FILE_CONTENT_REMOVED]",
					}
				}
				formData[key] = fileInfo
			}
		}

		if jsonBytes, err := json.Marshal(formData); err == nil {
			return string(jsonBytes)
		}
		return "[MULTIPART_FORM_DATA]"
	}

	body := string(c.Body())
	if len(body) > 1000 && (strings.Contains(body, "data:image/") ||
		strings.Contains(body, "base64") ||
		isLikelyBase64(body)) {
		return "[LARGE_REQUEST_BODY_WITH_POSSIBLE_FILE_CONTENT]"
	}

	return body
}

// isLikelyBase64 detects if content looks like base64
func isLikelyBase64(content string) bool {
	if len(content) < 100 {
		return false
	}

	base64Chars := 0
	for _, char := range content {
		if (char >= 'A' && char <= 'Z') ||
			(char >= 'a' && char <= 'z') ||
			(char >= '0' && char <= '9') ||
			char == '+' || char == '/' || char == '=' {
			base64Chars++
		}
	}

	return float64(base64Chars)/float64(len(content)) > 0.8
}

// CreateSanitizedLogEntry creates a deep copied and sanitized log entry for logging
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	method := string([]byte(c.Method()))
	url := string([]byte(c.OriginalURL()))
	requestBody := sanitizeRequestBody(c)
	responseBody := string(append([]byte(nil), c.Response().Body()...))

	requestHeaders := make([]byte, len(c.Request().Header.Header()))
	copy(requestHeaders, c.Request().Header.Header())

	responseHeaders := make([]byte, len(c.Response().Header.Header()))
	copy(responseHeaders, c.Response().Header.Header())

	return types.LogEntry{
		Method:          method,
		URL:             url,
		RequestBody:     requestBody,
		ResponseBody:    responseBody,
		RequestHeaders:  string(requestHeaders),
		ResponseHeaders: string(responseHeaders),
		StatusCode:      c.Response().StatusCode(),
		CreatedAt:       time.Now(),
	}
}
