package subsonic

import (
	"strconv"
)

// SubsonicResponseStatus is the status of a Subsonic response.
//
// Subsonic 1.16.1 Definition:
//
//	<xs:simpleType name="ResponseStatus">
//	    <xs:restriction base="xs:string">
//	        <xs:enumeration value="ok"/>
//	        <xs:enumeration value="failed"/>
//	    </xs:restriction>
//	</xs:simpleType>
type SubsonicResponseStatus string

const (
	SubsonicResponseStatusOk     SubsonicResponseStatus = "ok"
	SubsonicResponseStatusFailed SubsonicResponseStatus = "failed"
)

// checkResponse returns the error carried by a failed <subsonic-response>.
//
// Subsonic 1.16.1 Definition:
//
//	<xs:complexType name="Error">
//	    <xs:attribute name="code" type="xs:int" use="required"/>
//	    <xs:attribute name="message" type="xs:string" use="optional"/>
//	</xs:complexType>
func checkResponse(doc string) error {
	root, err := Attributes(doc)
	if err != nil {
		return err
	} else if root["status"] != string(SubsonicResponseStatusFailed) {
		return nil
	}

	attrs, err := FirstAttributes(doc, "error")
	if err != nil {
		return err
	}
	code, err := strconv.Atoi(attrs["code"])
	if err != nil {
		code = ErrGeneric.Code
	}
	return &SubsonicError{Code: code, Message: attrs["message"]}
}
