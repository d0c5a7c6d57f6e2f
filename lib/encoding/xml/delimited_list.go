package xml

import (
	"encoding/xml"
	"regexp"
	"strings"
)

var spaceCommaRegex = regexp.MustCompile(`[\,\s]+`)

// DelimitedList is a list of identifiers written as one attribute, separated
// by commas and/or whitespace.
type DelimitedList []string

func ParseDelimitedList(str string) DelimitedList {
	out := DelimitedList{}
	for _, item := range spaceCommaRegex.Split(strings.TrimSpace(str), -1) {
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (self *DelimitedList) Joined() string {
	return strings.Join([]string(*self), ", ")
}

func (self *DelimitedList) UnmarshalXMLAttr(attr xml.Attr) error {
	*self = ParseDelimitedList(attr.Value)
	return nil
}

func (self DelimitedList) MarshalXMLAttr(name xml.Name) (xml.Attr, error) {
	if len(self) == 0 {
		return xml.Attr{}, nil
	}
	return xml.Attr{
		Name:  name,
		Value: self.Joined(),
	}, nil
}
