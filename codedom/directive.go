package codedom

import "github.com/google/uuid"

// Directive is a preprocessor directive attached before or after a node.
type Directive interface {
	directive()
}

type RegionMode int

const (
	RegionStart RegionMode = iota
	RegionEnd
)

type RegionDirective struct {
	Mode RegionMode
	Text string
}

// ChecksumPragma records the checksum of the file a tree was produced from.
type ChecksumPragma struct {
	FileName    string
	AlgorithmID uuid.UUID
	Data        []byte
}

// Well-known checksum algorithm ids.
var (
	ChecksumMD5    = uuid.MustParse("406ea660-64cf-4c82-b6f0-42d48172a799")
	ChecksumSHA1   = uuid.MustParse("ff1816ec-aa5e-4d10-87f7-6f4963833460")
	ChecksumSHA256 = uuid.MustParse("8829d00f-11b8-4213-878b-770e8597ac16")
)

func (*RegionDirective) directive() {}
func (*ChecksumPragma) directive()  {}
