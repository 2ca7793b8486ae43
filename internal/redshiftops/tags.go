// SPDX-License-Identifier: MPL-2.0

package redshiftops

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/redshift/types"

	"github.com/invowk/rsctl/internal/invoke"
)

// maxTags is the service limit on tags per resource.
const maxTags = 50

// tagsParam binds a repeated Key=Value parameter to a []types.Tag field.
func tagsParam[In any](field func(*In) *[]types.Tag) invoke.Param[In] {
	return invoke.List("Tags", func(in *In, items []string) error {
		tags, err := parseTags(items)
		if err != nil {
			return err
		}
		*field(in) = tags
		return nil
	}).Items(1, maxTags).Describe("tags as Key=Value (repeatable)")
}

// parseTags converts Key=Value items into SDK tags. The value may be empty;
// the key may not.
func parseTags(items []string) ([]types.Tag, error) {
	tags := make([]types.Tag, 0, len(items))
	for _, item := range items {
		key, value, _ := strings.Cut(item, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("tag %q has no key (expected Key=Value)", item)
		}
		tags = append(tags, types.Tag{Key: aws.String(key), Value: aws.String(value)})
	}
	return tags, nil
}
