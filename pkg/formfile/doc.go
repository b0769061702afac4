// Package formfile loads form definitions written by hand in JSON or YAML.
//
// A file lists one or more forms:
//
//	forms:
//	  - operationId: cadastroCliente
//	    fields:
//	      - name: cpf
//	        required: true
//	      - name: contato
//	        uiHints:
//	          inputType: tel
//
// Fields default to the string type and get a label derived from their name.
package formfile
