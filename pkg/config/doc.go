// Package config loads named event filter definitions from YAML.
//
// A definition file lists filters with their fields and condition
// types. Fields use the same shapes BuildEventFilter accepts:
//
//	filters:
//	  - name: alarms
//	    fields:
//	      - SourceName
//	      - Time
//	      - ["2:Component1", "3:Property1"]
//	      - {namespaceIndex: 2, name: Severity}
//	    conditionTypes: ["i=2915", "ns=2;s=PumpAlarm"]
//
// Parse reads the raw structure; Resolve builds the filters.
package config
