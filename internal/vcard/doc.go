// Package vcard reads contacts from vCard files.
//
// Only the properties that map onto the address book schema are decoded;
// everything else in a card is skipped. Parsing is tolerant of the 2.1, 3.0
// and 4.0 line formats but does not validate cards against any of them.
package vcard
