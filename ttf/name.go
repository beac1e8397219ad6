package ttf

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

// NameID identifies the kind of a 'name' table record, following the
// OpenType name id registry.
type NameID uint16

const (
	NameCopyright          NameID = 0
	NameFontFamily         NameID = 1
	NameFontSubfamily      NameID = 2
	NameUniqueIdentifier   NameID = 3
	NameFullFontName       NameID = 4
	NameVersion            NameID = 5
	NamePostscriptName     NameID = 6
	NameTrademark          NameID = 7
	NameManufacturer       NameID = 8
	NameDesigner           NameID = 9
	NameDescription        NameID = 10
	NameVendorURL          NameID = 11
	NameDesignerURL        NameID = 12
	NameLicenseDescription NameID = 13
	NameLicenseInfoURL     NameID = 14
	NamePreferredFamily    NameID = 16
	NamePreferredSubfamily NameID = 17
	NameCompatibleFull     NameID = 18
	NameSampleText         NameID = 19
	NamePostscriptCID      NameID = 20
	NameWWSFamily          NameID = 21
	NameWWSSubfamily       NameID = 22
	NameLightPalette       NameID = 23
	NameDarkPalette        NameID = 24
	NameVariationsPrefix   NameID = 25
)

func (id NameID) String() string {
	switch id {
	case NameCopyright:
		return "copyright"
	case NameFontFamily:
		return "family"
	case NameFontSubfamily:
		return "subfamily"
	case NameUniqueIdentifier:
		return "unique-id"
	case NameFullFontName:
		return "full-name"
	case NameVersion:
		return "version"
	case NamePostscriptName:
		return "postscript-name"
	case NameTrademark:
		return "trademark"
	case NameManufacturer:
		return "manufacturer"
	case NameDesigner:
		return "designer"
	case NameDescription:
		return "description"
	case NameVendorURL:
		return "vendor-url"
	case NameDesignerURL:
		return "designer-url"
	case NameLicenseDescription:
		return "license"
	case NameLicenseInfoURL:
		return "license-url"
	case NamePreferredFamily:
		return "preferred-family"
	case NamePreferredSubfamily:
		return "preferred-subfamily"
	case NameCompatibleFull:
		return "compatible-full"
	case NameSampleText:
		return "sample-text"
	}
	return fmt.Sprintf("name-id-%d", uint16(id))
}

// NameRecord is one entry of the 'name' table, with its string already
// decoded. Records whose platform/encoding pair we cannot decode carry an
// explicit placeholder text rather than silently corrupted bytes.
type NameRecord struct {
	Platform PlatformID
	Encoding uint16
	Language uint16
	Kind     NameID
	Value    string
}

// NameTable is the decoded 'name' table: all records, in file order.
type NameTable struct {
	Records []NameRecord
}

// parseName decodes the 'name' table. Record strings live in a storage
// area behind the record array and are dereferenced through cloned
// cursors, leaving the record walk undisturbed.
func parseName(cur *ByteCursor, wc *warningCollector) (*NameTable, error) {
	table := &NameTable{}

	if err := cur.SkipU16(); err != nil { // format
		return nil, err
	}
	count, err := cur.U16()
	if err != nil {
		return nil, withField(err, "count")
	}
	stringOffset, err := cur.U16()
	if err != nil {
		return nil, withField(err, "stringOffset")
	}

	table.Records = make([]NameRecord, 0, count)
	for i := 0; i < int(count); i++ {
		platform, err := cur.U16()
		if err != nil {
			return nil, withField(err, "platformID")
		}
		encoding, err := cur.U16()
		if err != nil {
			return nil, withField(err, "encodingID")
		}
		language, err := cur.U16()
		if err != nil {
			return nil, withField(err, "languageID")
		}
		nameID, err := cur.U16()
		if err != nil {
			return nil, withField(err, "nameID")
		}
		length, err := cur.U16()
		if err != nil {
			return nil, withField(err, "length")
		}
		offset, err := cur.U16()
		if err != nil {
			return nil, withField(err, "offset")
		}

		deref := cur.Clone()
		if err := deref.AdvanceTo(int(stringOffset) + int(offset)); err != nil {
			return nil, err
		}
		raw, err := deref.Read(int(length))
		if err != nil {
			return nil, withField(err, "nameString")
		}
		value, decoded := decodeNameString(PlatformID(platform), encoding, raw)
		if !decoded {
			wc.addWarning(T("name"),
				fmt.Sprintf("record %d: unsupported encoding %s/%d", i, PlatformID(platform), encoding), 0)
		}

		table.Records = append(table.Records, NameRecord{
			Platform: PlatformID(platform),
			Encoding: encoding,
			Language: language,
			Kind:     NameID(nameID),
			Value:    value,
		})
	}
	return table, nil
}

// decodeNameString decodes record text per platform/encoding. Unicode
// platform strings and Microsoft Unicode encodings (1, 10) are UTF-16BE;
// anything else yields a placeholder and decoded == false.
func decodeNameString(platform PlatformID, encoding uint16, raw []byte) (string, bool) {
	if platform == PlatformUnicode ||
		(platform == PlatformMicrosoft && (encoding == msEncodingUnicodeBMP || encoding == msEncodingUnicodeFull)) {
		dec := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
		s, err := dec.Bytes(raw)
		if err != nil {
			return fmt.Sprintf("<undecodable UTF-16 string of %d bytes>", len(raw)), false
		}
		return string(s), true
	}
	return fmt.Sprintf("<encoding %s/%d not supported>", platform, encoding), false
}
