package validators

import "go.mongodb.org/mongo-driver/bson"

var UserValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"external_id",
			"role",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"external_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"role": bson.M{
				"enum": []string{"EMPLOYEE", "ADMIN"},
			},

			"username": bson.M{
				"bsonType":  "string",
				"maxLength": 100,
			},

			"display_name": bson.M{
				"bsonType":  "string",
				"maxLength": 100,
			},

			"avatar_url": bson.M{
				"bsonType":  "string",
				"maxLength": 2048,
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
