package manifest_codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"portranger/internal/core/domain"
	"portranger/internal/ports"

	yamlv3 "gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	utiljson "k8s.io/apimachinery/pkg/util/json"
	"sigs.k8s.io/yaml"
)

var _ ports.ManifestCodec = (*YamlCodec)(nil)

const documentSeparator = "---\n"

// YamlCodec decodes manifests into unstructured objects and renders them
// back with sorted keys.
type YamlCodec struct{}

func ProvideYamlCodec() *YamlCodec {
	return &YamlCodec{}
}

func (c *YamlCodec) Decode(data []byte) (*unstructured.Unstructured, error) {
	documents, err := splitDocuments(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedManifest, err)
	}
	switch {
	case len(documents) == 0:
		return nil, fmt.Errorf("%w: no YAML document found", domain.ErrMalformedManifest)
	case len(documents) > 1:
		return nil, fmt.Errorf("%w: expected a single YAML document, found %d", domain.ErrMalformedManifest, len(documents))
	}

	document, err := yamlv3.Marshal(documents[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedManifest, err)
	}

	jsonData, err := yaml.YAMLToJSON(document)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedManifest, err)
	}

	// utiljson keeps integers as int64, which unstructured accessors expect.
	var object map[string]interface{}
	if err := utiljson.Unmarshal(jsonData, &object); err != nil {
		return nil, fmt.Errorf("%w: top level must be a mapping: %v", domain.ErrMalformedManifest, err)
	}
	if object == nil {
		return nil, fmt.Errorf("%w: top level must be a mapping", domain.ErrMalformedManifest)
	}

	return &unstructured.Unstructured{Object: object}, nil
}

func (c *YamlCodec) Encode(objects ...*unstructured.Unstructured) ([]byte, error) {
	var buf bytes.Buffer
	for i, object := range objects {
		out, err := yaml.Marshal(object.Object)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s %q: %w", object.GetKind(), object.GetName(), err)
		}
		if i > 0 {
			buf.WriteString(documentSeparator)
		}
		buf.Write(out)
	}
	return buf.Bytes(), nil
}

// splitDocuments returns the non-empty documents of a YAML stream.
func splitDocuments(data []byte) ([]*yamlv3.Node, error) {
	decoder := yamlv3.NewDecoder(bytes.NewReader(data))
	var documents []*yamlv3.Node
	for {
		node := &yamlv3.Node{}
		err := decoder.Decode(node)
		if errors.Is(err, io.EOF) {
			return documents, nil
		}
		if err != nil {
			return nil, err
		}
		if !isEmptyDocument(node) {
			documents = append(documents, node)
		}
	}
}

func isEmptyDocument(node *yamlv3.Node) bool {
	if node.Kind != yamlv3.DocumentNode || len(node.Content) == 0 {
		return true
	}
	content := node.Content[0]
	return content.Kind == yamlv3.ScalarNode && content.Tag == "!!null"
}
