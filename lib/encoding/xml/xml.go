// Package xml reads and writes definitions as xml documents:
//
//	<schemagraph>
//	  <schema name="dbo">
//	    <table name="Emp" id="t1">
//	      <column name="id" type="int" null="false" primaryKey="true"/>
//	    </table>
//	    <view name="v"><viewQuery>SELECT ...</viewQuery></view>
//	  </schema>
//	</schemagraph>
//
// Objects in this package only know about the document model; validation
// belongs to ir.Definition.
package xml

import (
	"encoding/xml"
	"io"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/schemagraph/schemagraph/lib/encoding"
	"github.com/schemagraph/schemagraph/lib/ir"
)

const EncodingXML = encoding.Format("xml")

func init() {
	encoding.Register(EncodingXML, NewXMLEncoding, ".xml")
}

type XMLEncoding struct{}

func NewXMLEncoding() encoding.Encoding {
	return XMLEncoding{}
}

func (e XMLEncoding) Import(l *slog.Logger, r io.Reader) (*ir.Definition, error) {
	return ReadDef(r)
}

func (e XMLEncoding) Export(l *slog.Logger, def *ir.Definition, w io.Writer) error {
	return WriteDef(l, w, def)
}

// ReadDoc parses a `Document` from an `io.Reader`
func ReadDoc(r io.Reader) (*Document, error) {
	doc := &Document{}
	err := xml.NewDecoder(r).Decode(doc)
	if err != nil {
		return nil, errors.Wrap(err, "could not unmarshal xml")
	}
	return doc, nil
}

// WriteDoc writes the given `Document` to the given `io.Writer`
func WriteDoc(w io.Writer, doc *Document) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return errors.Wrap(enc.Encode(doc), "could not marshal xml")
}

func ReadDef(r io.Reader) (*ir.Definition, error) {
	doc, err := ReadDoc(r)
	if err != nil {
		return nil, err
	}
	return doc.ToIR()
}

func WriteDef(l *slog.Logger, w io.Writer, def *ir.Definition) error {
	doc, err := FromIR(l, def)
	if err != nil {
		return err
	}
	return WriteDoc(w, doc)
}
