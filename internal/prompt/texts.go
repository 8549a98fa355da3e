package prompt

type langTexts struct {
	system string
	focus  map[LanguageGroup]string
	create string
	update string
}

var texts = map[Lang]langTexts{
	English: {
		system: `You are a senior engineer writing technical reference documentation for a source file.
Write valid AsciiDoc only. Start with a level-0 title (= Title). Do not wrap the answer in code fences.
Describe what the code does and how to use it. Never invent behavior that is not in the source.`,
		focus: map[LanguageGroup]string{
			OOPClass: `Focus on classes and their responsibilities, public methods with parameters and return values,
inheritance and collaborators, and object lifecycle.`,
			Functional: `Focus on exported functions and their types, data transformations and composition,
side effects, and how state or processes are modeled.`,
			WebFrontend: `Focus on components, their props/inputs and emitted events, state management,
rendering behavior, and styling or DOM dependencies.`,
			Data: `Focus on the schema or configuration: entities, fields and their types, constraints,
relationships, and how other code consumes this file.`,
			Native: `Focus on types and functions, memory and ownership rules, error handling,
concurrency guarantees, and platform or performance considerations.`,
		},
		create: `Write documentation for the {{.Language}} file ` + "`{{.Path}}`" + ` in project {{.Project}}.
{{if .Outline}}
Declared symbols:
{{.Outline}}{{end}}
Source:
----
{{.Source}}
----
`,
		update: `The {{.Language}} file ` + "`{{.Path}}`" + ` in project {{.Project}} changed. Update its existing documentation.
Keep the structure and any still-accurate text; revise only what the new source contradicts or omits.
{{if .Outline}}
Declared symbols:
{{.Outline}}{{end}}
Current source:
----
{{.Source}}
----

Existing documentation:
----
{{.ExistingDoc}}
----
`,
	},
	Korean: {
		system: `당신은 소스 파일의 기술 참조 문서를 작성하는 시니어 엔지니어입니다.
유효한 AsciiDoc만 작성하세요. 레벨 0 제목(= 제목)으로 시작하고 코드 펜스로 감싸지 마세요.
코드가 하는 일과 사용 방법을 한국어로 설명하세요. 소스에 없는 동작을 지어내지 마세요.`,
		focus: map[LanguageGroup]string{
			OOPClass: `클래스와 책임, 공개 메서드의 매개변수와 반환값, 상속 관계와 협력 객체, 객체 생명주기를 중심으로 설명하세요.`,
			Functional: `공개 함수와 타입, 데이터 변환과 합성, 부수 효과, 상태나 프로세스를 모델링하는 방식을 중심으로 설명하세요.`,
			WebFrontend: `컴포넌트와 props/입력, 발생시키는 이벤트, 상태 관리, 렌더링 동작, 스타일이나 DOM 의존성을 중심으로 설명하세요.`,
			Data: `스키마나 설정의 엔티티, 필드와 타입, 제약 조건, 관계, 그리고 다른 코드가 이 파일을 사용하는 방식을 중심으로 설명하세요.`,
			Native: `타입과 함수, 메모리와 소유권 규칙, 오류 처리, 동시성 보장, 플랫폼 및 성능 고려 사항을 중심으로 설명하세요.`,
		},
		create: `프로젝트 {{.Project}}의 {{.Language}} 파일 ` + "`{{.Path}}`" + `에 대한 문서를 작성하세요.
{{if .Outline}}
선언된 심볼:
{{.Outline}}{{end}}
소스:
----
{{.Source}}
----
`,
		update: `프로젝트 {{.Project}}의 {{.Language}} 파일 ` + "`{{.Path}}`" + `이(가) 변경되었습니다. 기존 문서를 갱신하세요.
구조와 여전히 정확한 내용은 유지하고, 새 소스와 모순되거나 누락된 부분만 수정하세요.
{{if .Outline}}
선언된 심볼:
{{.Outline}}{{end}}
현재 소스:
----
{{.Source}}
----

기존 문서:
----
{{.ExistingDoc}}
----
`,
	},
}
