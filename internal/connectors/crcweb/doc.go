// Package crcweb scrapes a record's Core Research Center report page.
//
// Report pages lay out their data in tables with the class "report2". A
// table is recognised by the labels of its first row:
//
//	Min Depth | Max Depth | Age | Formation   -> depth/age/formation intervals
//	Sequence | Min Depth | Max Depth | View    -> thin sections
//
// Other tables are ignored. Within "report2" sections, anchors titled
// "see photo" and "download analysis document" link core photographs and
// analysis files; these become web links on the catalog item.
package crcweb
