package contracts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"storefront-service/internal/core/domain"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed schemas
var schemasFS embed.FS

var compiledSchemas = make(map[string]*jsonschema.Schema)

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	// Schemas are added as resources first so cross-file $ref would
	// resolve, then compiled and registered by generated key.
	err := fs.WalkDir(schemasFS, "schemas", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".json") {
			file, err := schemasFS.Open(path)
			if err != nil {
				return err
			}
			defer file.Close()
			if err := compiler.AddResource(path, file); err != nil {
				log.Fatalf("failed to add schema resource %s: %v", path, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("error walking and adding schema resources: %v", err)
	}

	err = fs.WalkDir(schemasFS, "schemas", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".json") {
			schema, err := compiler.Compile(path)
			if err != nil {
				return fmt.Errorf("could not compile schema %s: %w", path, err)
			}
			compiledSchemas[generateKeyFromPath(path)] = schema
		}
		return nil
	})
	if err != nil {
		log.Fatalf("error walking and compiling schemas: %v", err)
	}
}

// generateKeyFromPath turns "schemas/order/v1.json" into "Order/v1".
func generateKeyFromPath(path string) string {
	trimmed := strings.TrimPrefix(path, "schemas/")
	trimmed = strings.TrimSuffix(trimmed, ".json")

	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 {
		return ""
	}

	caser := cases.Title(language.English)
	nameParts := strings.Split(parts[0], "-")
	for i, p := range nameParts {
		nameParts[i] = caser.String(p)
	}
	return strings.Join(nameParts, "") + "/" + parts[1]
}

// validate checks raw JSON against a registered schema and converts
// schema violations into a domain.ValidationError whose message lists
// the offending fields.
func validate(key string, raw []byte) error {
	schema, ok := compiledSchemas[key]
	if !ok {
		return fmt.Errorf("unknown payload schema: %s", key)
	}

	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return domain.NewValidationError("", "request body is not valid JSON")
	}

	if err := schema.Validate(value); err != nil {
		var ve *jsonschema.ValidationError
		if verr, ok := err.(*jsonschema.ValidationError); ok {
			ve = verr
		} else {
			return domain.NewValidationError("", err.Error())
		}
		return domain.NewValidationError("", strings.Join(leafMessages(ve), "; "))
	}
	return nil
}

// leafMessages flattens the cause tree into caller-readable
// "location: message" strings.
func leafMessages(ve *jsonschema.ValidationError) []string {
	if len(ve.Causes) == 0 {
		loc := strings.TrimPrefix(ve.InstanceLocation, "/")
		if loc == "" {
			return []string{ve.Message}
		}
		return []string{fmt.Sprintf("%s: %s", strings.ReplaceAll(loc, "/", "."), ve.Message)}
	}
	var msgs []string
	for _, cause := range ve.Causes {
		msgs = append(msgs, leafMessages(cause)...)
	}
	return msgs
}

// ValidateOrderPayload checks a raw POST /api/orders body.
func ValidateOrderPayload(raw []byte) error {
	return validate("Order/v1", raw)
}

// ValidateContactPayload checks a raw POST /api/contact body.
func ValidateContactPayload(raw []byte) error {
	return validate("Contact/v1", raw)
}
