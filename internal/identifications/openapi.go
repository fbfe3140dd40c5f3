package identifications

import "github.com/JaimeStill/mariner/pkg/openapi"

var identifyOp = &openapi.Operation{
	Summary:     "Identify a boat from an uploaded photo",
	Description: "Multipart upload with the image in the \"image\" field. Accepts jpg, jpeg, png, gif and webp.",
	RequestBody: openapi.RequestBodyUpload("image"),
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Identification result", "IdentifyResponse"),
		400: openapi.ResponseRef("BadRequest"),
		413: openapi.ResponseRef("BadRequest"),
		500: openapi.ResponseRef("ServerError"),
	},
}

var identifyBase64Op = &openapi.Operation{
	Summary:     "Identify a boat from a base64 image",
	RequestBody: openapi.RequestBodyJSON("IdentifyBase64Request", true),
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Identification result", "IdentifyResponse"),
		400: openapi.ResponseRef("BadRequest"),
		500: openapi.ResponseRef("ServerError"),
	},
}

var listOp = &openapi.Operation{
	Summary:    "List identifications, newest first",
	Parameters: append(
		openapi.PageParams(),
		openapi.QueryParam("boat_type", "string", "Exact boat type", false),
		openapi.QueryParam("mmsi", "string", "Exact MMSI", false),
		openapi.QueryParam("vessel", "string", "Vessel name substring", false),
	),
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Identification page", "IdentificationList"),
	},
}

var findOp = &openapi.Operation{
	Summary:    "Get an identification",
	Parameters: []*openapi.Parameter{openapi.PathParam("id", "integer", "Identification id")},
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Identification", "IdentificationResult"),
		404: openapi.ResponseRef("NotFound"),
	},
}

var deleteOp = &openapi.Operation{
	Summary:    "Delete an identification",
	Parameters: []*openapi.Parameter{openapi.PathParam("id", "integer", "Identification id")},
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Deleted", "Message"),
		404: openapi.ResponseRef("NotFound"),
	},
}

func schemas() map[string]*openapi.Schema {
	str := &openapi.Schema{Type: "string"}
	num := &openapi.Schema{Type: "number"}
	label := &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"name":       str,
			"confidence": num,
		},
	}

	return map[string]*openapi.Schema{
		"Identification": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":            {Type: "integer"},
				"image_path":    str,
				"boat_type":     str,
				"boat_brand":    str,
				"boat_model":    str,
				"confidence":    num,
				"vessel_name":   str,
				"mmsi":          str,
				"registration":  str,
				"length":        str,
				"tonnage":       str,
				"owner":         str,
				"location":      str,
				"identified_at": {Type: "string", Format: "date-time"},
			},
		},
		"IdentifyBase64Request": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"image": {Type: "string", Description: "Data URL or raw base64"},
			},
			Required: []string{"image"},
		},
		"IdentifyResponse": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"success":  {Type: "boolean"},
				"id":       {Type: "integer"},
				"imageUrl": str,
				"identification": {
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"boatType":   str,
						"brand":      str,
						"model":      str,
						"confidence": num,
						"labels":     {Type: "array", Items: label},
						"colors": {Type: "array", Items: &openapi.Schema{
							Type: "object",
							Properties: map[string]*openapi.Schema{
								"value": str,
								"score": num,
							},
						}},
					},
				},
				"vesselData":   openapi.SchemaRef("Vessel"),
				"similarBoats": {Type: "array", Items: label},
			},
		},
		"IdentificationList": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"success":         {Type: "boolean"},
				"count":           {Type: "integer", Description: "Rows in this page"},
				"total":           {Type: "integer", Description: "Rows matching the filters"},
				"identifications": {Type: "array", Items: openapi.SchemaRef("Identification")},
			},
		},
		"IdentificationResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"success":        {Type: "boolean"},
				"identification": openapi.SchemaRef("Identification"),
			},
		},
		"Message": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"success": {Type: "boolean"},
				"message": str,
			},
		},
	}
}
