// Package xml parses hierarchical markup documents.
//
// Element names are joined from the root element down with the namespace delimiter.
// Element text becomes the value of that path and attributes become
// "<path><delimiter><attribute>". Sibling elements sharing a name form a list.
//
//	<config>
//	  <value>13</value>
//	  <multi><item>one</item><item>two</item></multi>
//	</config>
//
// yields "config.value" = "13" and "config.multi.item" = ["one", "two"].
package xml
