// Package docs содержит OpenAPI-описание API для swagger UI.
// Пересобирается командой: swag init -g cmd/server/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/health": {
			"get": {
				"tags": [
					"health"
				],
				"summary": "Проверка работоспособности сервера",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				}
			}
		},
		"/health/db": {
			"get": {
				"tags": [
					"health"
				],
				"summary": "Проверка подключения к базе данных",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				}
			}
		},
		"/users/register": {
			"post": {
				"tags": [
					"users"
				],
				"summary": "Регистрация пользователя",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/auth.LoginResponse"
						}
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/auth.RegisterRequest"
						}
					}
				]
			}
		},
		"/users/login": {
			"post": {
				"tags": [
					"users"
				],
				"summary": "Вход по email и паролю",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/auth.LoginResponse"
						}
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/auth.LoginRequest"
						}
					}
				]
			}
		},
		"/users/refresh": {
			"post": {
				"tags": [
					"users"
				],
				"summary": "Обновление пары токенов",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/auth.LoginResponse"
						}
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/auth.RefreshRequest"
						}
					}
				]
			}
		},
		"/users/verify-email": {
			"get": {
				"tags": [
					"users"
				],
				"summary": "Подтверждение email по ссылке из письма",
				"produces": [
					"application/json"
				],
				"responses": {
					"302": {
						"description": "OK"
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				}
			}
		},
		"/users/resend-verification": {
			"post": {
				"tags": [
					"users"
				],
				"summary": "Повторная отправка письма подтверждения",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/auth.MessageResponse"
						}
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/auth.ResendVerificationRequest"
						}
					}
				]
			}
		},
		"/users/me": {
			"get": {
				"tags": [
					"users"
				],
				"summary": "Профиль текущего пользователя",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/user.ProfileResponse"
						}
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"put": {
				"tags": [
					"users"
				],
				"summary": "Обновление профиля",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/user.ProfileResponse"
						}
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/user.ProfileUpdateRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/users": {
			"get": {
				"tags": [
					"users"
				],
				"summary": "Список пользователей",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/users/{userId}": {
			"get": {
				"tags": [
					"users"
				],
				"summary": "Пользователь по ID",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/user.ProfileResponse"
						}
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "userId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"delete": {
				"tags": [
					"users"
				],
				"summary": "Удаление аккаунта",
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "userId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/users/enroll/{courseId}": {
			"post": {
				"tags": [
					"users"
				],
				"summary": "Запись на курс",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/user.RegistrationResponse"
						}
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "courseId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/users/unregister/{courseId}": {
			"delete": {
				"tags": [
					"users"
				],
				"summary": "Отмена записи на курс",
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "courseId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/users/{userId}/registrations": {
			"get": {
				"tags": [
					"users"
				],
				"summary": "Записи пользователя на курсы",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "userId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/categories": {
			"get": {
				"tags": [
					"categories"
				],
				"summary": "Список категорий",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				}
			},
			"post": {
				"tags": [
					"categories"
				],
				"summary": "Создание категории",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/category.CategoryResponse"
						}
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/category.CategoryRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/categories/{id}": {
			"get": {
				"tags": [
					"categories"
				],
				"summary": "Категория по ID",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/category.CategoryResponse"
						}
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"put": {
				"tags": [
					"categories"
				],
				"summary": "Переименование категории",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/category.CategoryResponse"
						}
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/category.CategoryRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"delete": {
				"tags": [
					"categories"
				],
				"summary": "Удаление категории",
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/courses": {
			"get": {
				"tags": [
					"courses"
				],
				"summary": "Список курсов",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"post": {
				"tags": [
					"courses"
				],
				"summary": "Создание курса",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/course.CourseResponse"
						}
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/courses/{id}": {
			"get": {
				"tags": [
					"courses"
				],
				"summary": "Курс по ID",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/course.CourseResponse"
						}
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"put": {
				"tags": [
					"courses"
				],
				"summary": "Обновление курса",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/course.CourseResponse"
						}
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"delete": {
				"tags": [
					"courses"
				],
				"summary": "Удаление курса",
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/courses/created-by/{userId}": {
			"get": {
				"tags": [
					"courses"
				],
				"summary": "Курсы автора",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "userId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/course-chapters": {
			"get": {
				"tags": [
					"course-chapters"
				],
				"summary": "Список глав",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"post": {
				"tags": [
					"course-chapters"
				],
				"summary": "Создание главы",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/chapter.ChapterResponse"
						}
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/chapter.CreateRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/course-chapters/by-course/{courseId}": {
			"get": {
				"tags": [
					"course-chapters"
				],
				"summary": "Главы курса",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "courseId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/course-chapters/order": {
			"put": {
				"tags": [
					"course-chapters"
				],
				"summary": "Изменение порядка глав",
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/chapter.OrderRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/course-chapters/{id}": {
			"get": {
				"tags": [
					"course-chapters"
				],
				"summary": "Глава по ID",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/chapter.ChapterResponse"
						}
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"put": {
				"tags": [
					"course-chapters"
				],
				"summary": "Обновление главы",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/chapter.ChapterResponse"
						}
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/chapter.UpdateRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"delete": {
				"tags": [
					"course-chapters"
				],
				"summary": "Удаление главы",
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/course-subchapters": {
			"get": {
				"tags": [
					"course-subchapters"
				],
				"summary": "Список подглав",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"post": {
				"tags": [
					"course-subchapters"
				],
				"summary": "Создание подглавы",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/subchapter.SubChapterResponse"
						}
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/subchapter.CreateRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/course-subchapters/by-chapter/{chapterId}": {
			"get": {
				"tags": [
					"course-subchapters"
				],
				"summary": "Подглавы главы",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "chapterId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/course-subchapters/order": {
			"put": {
				"tags": [
					"course-subchapters"
				],
				"summary": "Изменение порядка подглав",
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/subchapter.OrderRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/course-subchapters/{id}": {
			"get": {
				"tags": [
					"course-subchapters"
				],
				"summary": "Подглава по ID",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/subchapter.SubChapterResponse"
						}
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"put": {
				"tags": [
					"course-subchapters"
				],
				"summary": "Обновление подглавы",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/subchapter.SubChapterResponse"
						}
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/subchapter.UpdateRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"delete": {
				"tags": [
					"course-subchapters"
				],
				"summary": "Удаление подглавы",
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/bans": {
			"get": {
				"tags": [
					"bans"
				],
				"summary": "Список блокировок",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"post": {
				"tags": [
					"bans"
				],
				"summary": "Блокировка пользователя на курсе",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/ban.BanResponse"
						}
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/ban.BanRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/bans/by-user/{userId}": {
			"get": {
				"tags": [
					"bans"
				],
				"summary": "Блокировки пользователя",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "userId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/bans/by-course/{courseId}": {
			"get": {
				"tags": [
					"bans"
				],
				"summary": "Блокировки на курсе",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "courseId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/bans/{id}": {
			"get": {
				"tags": [
					"bans"
				],
				"summary": "Блокировка по ID",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/ban.BanResponse"
						}
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"delete": {
				"tags": [
					"bans"
				],
				"summary": "Снятие блокировки",
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/feedbacks": {
			"post": {
				"tags": [
					"feedbacks"
				],
				"summary": "Создание отзыва",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/feedback.FeedbackResponse"
						}
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/feedback.CreateRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/feedbacks/{id}": {
			"get": {
				"tags": [
					"feedbacks"
				],
				"summary": "Отзыв по ID",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/feedback.FeedbackResponse"
						}
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"delete": {
				"tags": [
					"feedbacks"
				],
				"summary": "Удаление отзыва",
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "OK"
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/feedbacks/by-user/{userId}": {
			"get": {
				"tags": [
					"feedbacks"
				],
				"summary": "Отзывы пользователя",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "userId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/feedbacks/by-course/{courseId}": {
			"get": {
				"tags": [
					"feedbacks"
				],
				"summary": "Отзывы о курсе",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"default": {
						"description": "Ошибка",
						"schema": {
							"$ref": "#/definitions/response.ErrorBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "courseId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		}
	},
	"definitions": {
		"response.ErrorBody": {
			"type": "object",
			"properties": {
				"code": {
					"type": "string"
				},
				"message": {
					"type": "string"
				},
				"details": {}
			}
		},
		"auth.RegisterRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				},
				"username": {
					"type": "string"
				}
			},
			"required": [
				"email",
				"password",
				"username"
			]
		},
		"auth.LoginRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			},
			"required": [
				"email",
				"password"
			]
		},
		"auth.RefreshRequest": {
			"type": "object",
			"properties": {
				"refreshToken": {
					"type": "string"
				}
			},
			"required": [
				"refreshToken"
			]
		},
		"auth.ResendVerificationRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				}
			},
			"required": [
				"email"
			]
		},
		"auth.MessageResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				}
			}
		},
		"auth.TokenPair": {
			"type": "object",
			"properties": {
				"accessToken": {
					"type": "string"
				},
				"refreshToken": {
					"type": "string"
				}
			}
		},
		"auth.LoginResponse": {
			"type": "object",
			"properties": {
				"userId": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"username": {
					"type": "string"
				},
				"role": {
					"type": "string"
				},
				"isEmailVerified": {
					"type": "boolean"
				},
				"tokens": {
					"$ref": "#/definitions/auth.TokenPair"
				}
			}
		},
		"user.ProfileResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"username": {
					"type": "string"
				},
				"phoneNumber": {
					"type": "string"
				},
				"role": {
					"type": "string"
				},
				"isEmailVerified": {
					"type": "boolean"
				},
				"createdAt": {
					"type": "string",
					"format": "date-time"
				},
				"updatedAt": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"user.ProfileUpdateRequest": {
			"type": "object",
			"properties": {
				"phoneNumber": {
					"type": "string"
				},
				"oldPassword": {
					"type": "string"
				},
				"newPassword": {
					"type": "string"
				}
			}
		},
		"user.RegistrationResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"userId": {
					"type": "string"
				},
				"courseId": {
					"type": "string"
				},
				"registeredAt": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"category.CategoryRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				}
			},
			"required": [
				"name"
			]
		},
		"category.CategoryResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"name": {
					"type": "string"
				}
			}
		},
		"course.CourseResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"imageUrl": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"creatorId": {
					"type": "string"
				},
				"startDate": {
					"type": "string",
					"format": "date-time"
				},
				"finishDate": {
					"type": "string",
					"format": "date-time"
				},
				"language": {
					"type": "string"
				},
				"requirements": {
					"type": "string"
				},
				"categories": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/category.CategoryResponse"
					}
				}
			}
		},
		"chapter.CreateRequest": {
			"type": "object",
			"properties": {
				"courseId": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"estimatedLearningTimeMinutes": {
					"type": "integer"
				}
			},
			"required": [
				"courseId",
				"name",
				"estimatedLearningTimeMinutes"
			]
		},
		"chapter.UpdateRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"estimatedLearningTimeMinutes": {
					"type": "integer"
				}
			},
			"required": [
				"name",
				"estimatedLearningTimeMinutes"
			]
		},
		"chapter.OrderRequest": {
			"type": "object",
			"properties": {
				"ids": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"numbers": {
					"type": "array",
					"items": {
						"type": "integer"
					}
				}
			},
			"required": [
				"ids",
				"numbers"
			]
		},
		"chapter.ChapterResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"courseId": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"estimatedLearningTimeMinutes": {
					"type": "integer"
				},
				"number": {
					"type": "integer"
				}
			}
		},
		"subchapter.CreateRequest": {
			"type": "object",
			"properties": {
				"chapterId": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"content": {
					"type": "string"
				},
				"estimatedLearningTimeMinutes": {
					"type": "integer"
				}
			},
			"required": [
				"chapterId",
				"name",
				"content",
				"estimatedLearningTimeMinutes"
			]
		},
		"subchapter.UpdateRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"content": {
					"type": "string"
				},
				"estimatedLearningTimeMinutes": {
					"type": "integer"
				}
			},
			"required": [
				"name",
				"content",
				"estimatedLearningTimeMinutes"
			]
		},
		"subchapter.OrderRequest": {
			"type": "object",
			"properties": {
				"ids": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"numbers": {
					"type": "array",
					"items": {
						"type": "integer"
					}
				}
			},
			"required": [
				"ids",
				"numbers"
			]
		},
		"subchapter.SubChapterResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"chapterId": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"content": {
					"type": "string"
				},
				"estimatedLearningTimeMinutes": {
					"type": "integer"
				},
				"number": {
					"type": "integer"
				}
			}
		},
		"ban.BanRequest": {
			"type": "object",
			"properties": {
				"userId": {
					"type": "string"
				},
				"courseId": {
					"type": "string"
				},
				"reason": {
					"type": "string"
				}
			},
			"required": [
				"userId",
				"courseId",
				"reason"
			]
		},
		"ban.BanResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"userId": {
					"type": "string"
				},
				"courseId": {
					"type": "string"
				},
				"reason": {
					"type": "string"
				},
				"bannedAt": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"feedback.CreateRequest": {
			"type": "object",
			"properties": {
				"courseId": {
					"type": "string"
				},
				"content": {
					"type": "string"
				},
				"rating": {
					"type": "integer"
				}
			},
			"required": [
				"courseId",
				"content",
				"rating"
			]
		},
		"feedback.FeedbackResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"userId": {
					"type": "string"
				},
				"courseId": {
					"type": "string"
				},
				"content": {
					"type": "string"
				},
				"rating": {
					"type": "integer"
				},
				"createdAt": {
					"type": "string",
					"format": "date-time"
				}
			}
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Course Platform API",
	Description:      "API платформы онлайн-курсов: пользователи, курсы, главы, блокировки и отзывы.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
