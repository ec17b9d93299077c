package validators

import "go.mongodb.org/mongo-driver/bson"

var PetValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"species",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"species": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 60,
			},

			"breed": bson.M{
				"bsonType":  "string",
				"maxLength": 60,
			},

			"age": bson.M{
				"bsonType":  "string",
				"maxLength": 30,
			},

			"notes": bson.M{
				"bsonType":  "string",
				"maxLength": 2000,
			},

			"photo_url": bson.M{
				"bsonType":  "string",
				"maxLength": 2048,
			},

			"status": bson.M{
				"enum": []string{"AVAILABLE", "RESERVED", "ADOPTED"},
			},

			"active_visit_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
